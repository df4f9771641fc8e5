package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanFrequency represents the cadence of a recurring plan
type PlanFrequency string

const (
	PlanFrequencyMonthly PlanFrequency = "monthly"
)

// Day-of-month sentinels accepted in ExpectedDate alongside "1".."31".
const (
	ExpectedDateLast        = "last"
	ExpectedDateLastWorking = "last-working"
)

// RecurringPlan is a template for a periodic income or expense event,
// such as rent, salary, a subscription, or a loan installment.
// ExpectedDate is an integer string "1".."31" or one of the sentinels above.
type RecurringPlan struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type         TransactionType `gorm:"not null" json:"type"`
	Frequency    PlanFrequency   `gorm:"default:monthly" json:"frequency"`
	ExpectedDate string          `gorm:"not null" json:"expected_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	Metadata     string          `json:"metadata,omitempty"`
}
