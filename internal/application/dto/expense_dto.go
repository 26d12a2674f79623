package dto

import (
	"time"

	"github.com/dreistrom/dreistrom-api/internal/domain/money"
)

// CreateAllocationRuleRequest body for POST /api/expenses/rules.
// Percentages must sum to 100.
type CreateAllocationRuleRequest struct {
	Name         string `json:"name"`
	FreiberufPct int    `json:"freiberuf_pct"`
	GewerbePct   int    `json:"gewerbe_pct"`
	PersonalPct  int    `json:"personal_pct"`
}

// AllocationRuleResponse rule output.
type AllocationRuleResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FreiberufPct int       `json:"freiberuf_pct"`
	GewerbePct   int       `json:"gewerbe_pct"`
	PersonalPct  int       `json:"personal_pct"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateExpenseRequest body for POST /api/expenses. Amount is the gross
// decimal euro string.
type CreateExpenseRequest struct {
	Amount           string `json:"amount"`
	Category         string `json:"category"`
	EntryDate        string `json:"entry_date"` // YYYY-MM-DD
	AllocationRuleID string `json:"allocation_rule_id,omitempty"`
	ReceiptDocID     string `json:"receipt_doc_id,omitempty"`
	Description      string `json:"description,omitempty"`
}

// ExpenseResponse expense output.
type ExpenseResponse struct {
	ID               string      `json:"id"`
	Amount           money.Money `json:"amount"`
	Currency         string      `json:"currency"`
	Category         string      `json:"category"`
	EntryDate        string      `json:"entry_date"`
	AllocationRuleID string      `json:"allocation_rule_id,omitempty"`
	ReceiptDocID     string      `json:"receipt_doc_id,omitempty"`
	Description      string      `json:"description,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}
