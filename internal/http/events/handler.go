// Package events exposes the collection-changed broadcast as a server-sent
// event stream, the cross-tab notification for browser consumers. Events
// carry no payload; clients re-fetch the collection on each one.
package events

import (
	"fmt"
	"net/http"

	"github.com/tallyhq/tally/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	changed := make(chan struct{}, 1)

	unsubscribe := h.svc.Subscribe(func() {
		// Coalesce: a pending notification already forces a re-read.
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			fmt.Fprint(w, "event: changed\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}
