package transaction

import (
	"github.com/tallyhq/tally/internal/transaction"
)

type transactionResponse struct {
	ID          string           `json:"id"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Date        string           `json:"date"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Date:        tx.Date,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
