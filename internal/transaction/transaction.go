package transaction

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a single income or expense record as persisted:
// one element of the JSON array stored under the collection key.
//
// Date is a plain calendar date (YYYY-MM-DD); CreatedAt is an RFC 3339
// timestamp assigned once at creation and used for recency ordering.
type Transaction struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
}

// Candidate is the loosely typed input to Add. Fields may be missing or
// malformed; Add never rejects, it normalizes. Amount is `any` on purpose:
// bulk callers hand us whatever JSON decoded to (float64, string, nil).
type Candidate struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}
