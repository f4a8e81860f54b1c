package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tallyhq/tally/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.clearAll)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Notes       string      `json:"notes"`
}

// validate enforces the strict entry-form rules. The store itself coerces
// instead of rejecting; this is the one place invalid input is surfaced to
// the user.
func (req createTransactionRequest) validate() string {
	if strings.TrimSpace(req.Description) == "" {
		return "Description is required."
	}

	amount, err := req.Amount.Float64()
	if err != nil || amount <= 0 {
		return "Amount must be a number greater than 0."
	}

	if strings.TrimSpace(req.Category) == "" {
		return "Please select a category."
	}

	return ""
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	amount, _ := req.Amount.Float64()

	tx := h.svc.Add(transaction.Candidate{
		Type:        req.Type,
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Date:        req.Date,
		Notes:       req.Notes,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var txs []transaction.Transaction

	switch {
	case r.URL.Query().Get("recent") != "":
		limit, _ := strconv.Atoi(r.URL.Query().Get("recent"))
		txs = h.svc.Recent(limit)
	case r.URL.Query().Get("type") != "":
		txs = h.svc.ByType(transaction.Type(r.URL.Query().Get("type")))
	case r.URL.Query().Get("category") != "":
		txs = h.svc.ByCategory(r.URL.Query().Get("category"))
	default:
		txs = h.svc.All()
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	// Deleting an absent id is a no-op, so this always succeeds.
	h.svc.Delete(chi.URLParam(r, "id"))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearAll(w http.ResponseWriter, _ *http.Request) {
	h.svc.ClearAll()

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
