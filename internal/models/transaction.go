package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Necessity classifies an expense as largely unavoidable (fixed) or
// discretionary (variable). Only variable expenses take part in leak analysis.
type Necessity string

const (
	NecessityFixed    Necessity = "fixed"
	NecessityVariable Necessity = "variable"
)

// Transaction represents a single income or expense entry
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Merchant    string          `json:"merchant,omitempty"`
	Description string          `json:"description"`
	Necessity   Necessity       `gorm:"default:variable" json:"necessity"`
	Remarks     string          `json:"remarks,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}
