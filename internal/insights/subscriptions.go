package insights

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// SubscriptionCandidate is a repeat payee that looks like a subscription the
// user is not yet tracking as a recurring plan.
type SubscriptionCandidate struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	LastPaid  time.Time       `json:"last_paid"`
}

// Frequency labels for subscription candidates.
const (
	FrequencyMonthlyFixed     = "Monthly (Fixed)"
	FrequencyFrequentVariable = "Frequent (Variable)"
)

// amountTolerance is the maximum spread (in currency units) from the group's
// first payment for the group to still count as a fixed amount.
var amountTolerance = decimal.NewFromInt(1)

// FindSubscriptions groups expense transactions by normalized merchant (or
// description when merchant is absent) and reports groups with two or more
// payments that do not already match a recurring plan by name.
func FindSubscriptions(transactions []models.Transaction, plans []models.RecurringPlan) []SubscriptionCandidate {
	groups := map[string][]*models.Transaction{}
	var order []string
	for i := range transactions {
		tx := &transactions[i]
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		key := normalizeName(payeeName(tx))
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], tx)
	}

	planNames := make([]string, 0, len(plans))
	for i := range plans {
		if name := normalizeName(plans[i].Name); name != "" {
			planNames = append(planNames, name)
		}
	}

	candidates := []SubscriptionCandidate{}
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		if trackedByPlan(key, planNames) {
			continue
		}

		fixed := true
		first := group[0].Amount
		for _, tx := range group[1:] {
			if tx.Amount.Sub(first).Abs().GreaterThan(amountTolerance) {
				fixed = false
				break
			}
		}

		last := group[0]
		for _, tx := range group[1:] {
			if !tx.Date.Before(last.Date) {
				last = tx
			}
		}

		frequency := FrequencyFrequentVariable
		if fixed {
			frequency = FrequencyMonthlyFixed
		}
		candidates = append(candidates, SubscriptionCandidate{
			Name:      payeeName(last),
			Amount:    last.Amount,
			Frequency: frequency,
			LastPaid:  last.Date,
		})
	}
	return candidates
}

// normalizeName lowercases and trims a payee or plan name for matching.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// trackedByPlan reports whether the normalized name substring-matches any
// recurring plan name in either direction.
func trackedByPlan(name string, planNames []string) bool {
	for _, plan := range planNames {
		if strings.Contains(plan, name) || strings.Contains(name, plan) {
			return true
		}
	}
	return false
}
