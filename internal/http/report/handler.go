package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

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
	r.Get("/summary", h.summary)
	r.Get("/spending", h.spending)
	r.Get("/categories", h.categories)
}

type summaryResponse struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, summaryResponse{
		TotalIncome:   h.svc.TotalIncome(),
		TotalExpenses: h.svc.TotalExpenses(),
		Balance:       h.svc.Balance(),
	})
}

type spendingEntry struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Icon     string  `json:"icon"`
	Amount   float64 `json:"amount"`
}

// spending returns per-category expense totals sorted by descending amount,
// the order the chart assigns its colors in.
func (h *Handler) spending(w http.ResponseWriter, _ *http.Request) {
	byCategory := h.svc.SpendingByCategory()

	entries := make([]spendingEntry, 0, len(byCategory))
	for category, amount := range byCategory {
		entries = append(entries, spendingEntry{
			Category: category,
			Label:    transaction.CategoryName(category),
			Icon:     transaction.CategoryIcon(category),
			Amount:   amount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}

		return entries[i].Category < entries[j].Category
	})

	writeJSON(w, entries)
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, transaction.Categories())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
