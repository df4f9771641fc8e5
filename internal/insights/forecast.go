package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// ForecastWeek is one 7-day window of a cash-flow projection.
type ForecastWeek struct {
	WeekStart time.Time       `json:"week_start"`
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Balance   decimal.Decimal `json:"balance"`
	IsDanger  bool            `json:"is_danger"`
}

// dangerRatio is the share of the opening balance below which a projected
// week is flagged. The comparison always uses the opening balance passed to
// Forecast, never the running balance of an earlier week.
var dangerRatio = decimal.NewFromFloat(0.2)

// Forecast projects the running balance over horizonWeeks consecutive 7-day
// windows starting at fromDate. Each window sums recurring-plan events,
// one-off transactions dated inside the window (past or future), and active
// debts due inside the window. Receivable debts count as income, payable
// debts as expense.
func Forecast(
	openingBalance decimal.Decimal,
	plans []models.RecurringPlan,
	transactions []models.Transaction,
	debts []models.Debt,
	horizonWeeks int,
	fromDate time.Time,
) ([]ForecastWeek, error) {
	if horizonWeeks <= 0 {
		return []ForecastWeek{}, nil
	}

	start := dayOf(fromDate)
	events, err := ProjectEvents(plans, start, start.AddDate(0, 0, horizonWeeks*7-1))
	if err != nil {
		return nil, err
	}

	threshold := openingBalance.Mul(dangerRatio)
	balance := openingBalance
	weeks := make([]ForecastWeek, 0, horizonWeeks)
	for i := 0; i < horizonWeeks; i++ {
		weekStart := start.AddDate(0, 0, i*7)
		weekEnd := weekStart.AddDate(0, 0, 6)

		income, expense := decimal.Zero, decimal.Zero
		for _, ev := range events {
			if inWindow(ev.Date, weekStart, weekEnd) {
				income, expense = addFlow(income, expense, ev.Amount, ev.Type)
			}
		}
		for j := range transactions {
			tx := &transactions[j]
			if inWindow(tx.Date, weekStart, weekEnd) {
				income, expense = addFlow(income, expense, tx.Amount, tx.Type)
			}
		}
		for j := range debts {
			debt := &debts[j]
			if debt.Status != models.DebtStatusActive || debt.DueDate == nil {
				continue
			}
			if !inWindow(*debt.DueDate, weekStart, weekEnd) {
				continue
			}
			if debt.Direction == models.DebtDirectionReceivable {
				income, expense = addFlow(income, expense, debt.Amount, models.TransactionTypeIncome)
			} else {
				income, expense = addFlow(income, expense, debt.Amount, models.TransactionTypeExpense)
			}
		}

		balance = balance.Add(income).Sub(expense)
		weeks = append(weeks, ForecastWeek{
			WeekStart: weekStart,
			Income:    income,
			Expense:   expense,
			Balance:   balance,
			IsDanger:  balance.IsNegative() || balance.LessThan(threshold),
		})
	}
	return weeks, nil
}

// addFlow accumulates amount into the income or expense total by type.
// Negative amounts are skipped so a malformed row can never poison a
// running balance.
func addFlow(income, expense, amount decimal.Decimal, typ models.TransactionType) (decimal.Decimal, decimal.Decimal) {
	if amount.IsNegative() {
		return income, expense
	}
	if typ == models.TransactionTypeIncome {
		return income.Add(amount), expense
	}
	return income, expense.Add(amount)
}

// inWindow reports whether t's calendar day falls in [weekStart, weekEnd].
func inWindow(t, weekStart, weekEnd time.Time) bool {
	d := dayOf(t)
	return !d.Before(weekStart) && !d.After(weekEnd)
}
