package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtDirection tells whether the user owes the money or is owed it
type DebtDirection string

const (
	DebtDirectionPayable    DebtDirection = "payable"    // I owe
	DebtDirectionReceivable DebtDirection = "receivable" // owed to me
)

// DebtStatus represents the lifecycle state of a debt
type DebtStatus string

const (
	DebtStatusActive DebtStatus = "active"
	DebtStatusRepaid DebtStatus = "repaid"
)

// Debt represents an IOU between the user and another person
type Debt struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	PersonName string          `gorm:"not null" json:"person_name"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Direction  DebtDirection   `gorm:"not null" json:"direction"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Status     DebtStatus      `gorm:"default:active" json:"status"`
}
