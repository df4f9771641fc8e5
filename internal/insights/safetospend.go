package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// SafeToSpend is the daily discretionary amount left after reserving for
// known upcoming recurring expenses and payable debts this month.
type SafeToSpend struct {
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
	DaysLeft  int             `json:"days_left"`
	PerDay    decimal.Decimal `json:"per_day"`
}

// ComputeSafeToSpend reserves the recurring expenses still due between
// referenceDate and the end of its month, plus active payable debts due in
// that window, and spreads what remains of the balance over the days left.
func ComputeSafeToSpend(
	balance decimal.Decimal,
	plans []models.RecurringPlan,
	debts []models.Debt,
	referenceDate time.Time,
) (SafeToSpend, error) {
	today := dayOf(referenceDate)
	monthEnd := time.Date(today.Year(), today.Month(), lastDay(today.Year(), today.Month()),
		0, 0, 0, 0, today.Location())

	events, err := ProjectEvents(plans, today, monthEnd)
	if err != nil {
		return SafeToSpend{}, err
	}

	reserved := decimal.Zero
	for _, ev := range events {
		if ev.Type == models.TransactionTypeExpense && !ev.Amount.IsNegative() {
			reserved = reserved.Add(ev.Amount)
		}
	}
	for i := range debts {
		debt := &debts[i]
		if debt.Status != models.DebtStatusActive || debt.Direction != models.DebtDirectionPayable {
			continue
		}
		if debt.DueDate == nil || !inWindow(*debt.DueDate, today, monthEnd) {
			continue
		}
		if !debt.Amount.IsNegative() {
			reserved = reserved.Add(debt.Amount)
		}
	}

	daysLeft := monthEnd.Day() - today.Day() + 1
	available := balance.Sub(reserved)
	perDay := decimal.Zero
	if available.IsPositive() && daysLeft > 0 {
		perDay = available.DivRound(decimal.NewFromInt(int64(daysLeft)), 2)
	}

	return SafeToSpend{
		Available: available,
		Reserved:  reserved,
		DaysLeft:  daysLeft,
		PerDay:    perDay,
	}, nil
}
