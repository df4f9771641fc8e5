package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Leak flags a category whose current-month variable spending is anomalously
// high versus its own history, or versus the month's total when no history
// exists yet.
type Leak struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Suggestion string          `json:"suggestion"`
}

var (
	leakRatio      = decimal.NewFromFloat(1.3)
	leakMinOverage = decimal.NewFromInt(500)
	coldStartShare = decimal.NewFromFloat(0.25)
	coldStartFloor = decimal.NewFromInt(1000)
	hundred        = decimal.NewFromInt(100)
)

// DetectLeaks compares current-month variable-expense spending per category
// against that category's historical monthly average. Categories with no
// history are instead compared against their share of the month's total
// variable spend. Results are sorted by descending overage.
func DetectLeaks(transactions []models.Transaction, referenceDate time.Time) []Leak {
	refYear, refMonth := referenceDate.Year(), referenceDate.Month()

	current := map[string]decimal.Decimal{}
	var categories []string // first-appearance order of current-month categories
	history := map[string]map[string]decimal.Decimal{}
	merchants := map[string]*merchantTally{}
	monthTotal := decimal.Zero

	for i := range transactions {
		tx := &transactions[i]
		if tx.Type != models.TransactionTypeExpense || tx.Necessity != models.NecessityVariable {
			continue
		}
		if tx.Amount.IsNegative() {
			continue
		}
		if tx.Date.Year() == refYear && tx.Date.Month() == refMonth {
			if _, ok := current[tx.Category]; !ok {
				categories = append(categories, tx.Category)
				merchants[tx.Category] = newMerchantTally()
			}
			current[tx.Category] = current[tx.Category].Add(tx.Amount)
			merchants[tx.Category].add(payeeName(tx), tx.Amount)
			monthTotal = monthTotal.Add(tx.Amount)
			continue
		}
		key := fmt.Sprintf("%04d-%02d", tx.Date.Year(), tx.Date.Month())
		if history[tx.Category] == nil {
			history[tx.Category] = map[string]decimal.Decimal{}
		}
		history[tx.Category][key] = history[tx.Category][key].Add(tx.Amount)
	}

	leaks := []Leak{}
	for _, category := range categories {
		spent := current[category]
		top := merchants[category].top()

		average := monthlyAverage(history[category])
		if average.IsPositive() {
			overage := spent.Sub(average)
			if spent.GreaterThan(average.Mul(leakRatio)) && overage.GreaterThan(leakMinOverage) {
				pct := overage.Div(average).Mul(hundred).Round(0)
				leaks = append(leaks, Leak{
					Category: category,
					Amount:   overage,
					Suggestion: fmt.Sprintf("Spending on %s is %s%% above its monthly average. Top merchant: %s.",
						category, pct, top),
				})
			}
			continue
		}

		// Cold start: no usable history for this category.
		if monthTotal.IsZero() {
			continue
		}
		if spent.GreaterThan(monthTotal.Mul(coldStartShare)) && spent.GreaterThan(coldStartFloor) {
			pct := spent.Div(monthTotal).Mul(hundred).Round(0)
			leaks = append(leaks, Leak{
				Category: category,
				Amount:   spent,
				Suggestion: fmt.Sprintf("%s makes up %s%% of this month's variable spending. Top merchant: %s.",
					category, pct, top),
			})
		}
	}

	sort.SliceStable(leaks, func(i, j int) bool {
		return leaks[i].Amount.GreaterThan(leaks[j].Amount)
	})
	return leaks
}

// monthlyAverage returns the simple mean of per-month totals, or zero when
// there is no history.
func monthlyAverage(months map[string]decimal.Decimal) decimal.Decimal {
	if len(months) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, total := range months {
		sum = sum.Add(total)
	}
	return sum.Div(decimal.NewFromInt(int64(len(months))))
}

// merchantTally accumulates per-merchant spend, remembering encounter order
// so ties resolve deterministically via a stable sort.
type merchantTally struct {
	totals map[string]decimal.Decimal
	order  []string
}

func newMerchantTally() *merchantTally {
	return &merchantTally{totals: map[string]decimal.Decimal{}}
}

func (t *merchantTally) add(name string, amount decimal.Decimal) {
	if _, ok := t.totals[name]; !ok {
		t.order = append(t.order, name)
	}
	t.totals[name] = t.totals[name].Add(amount)
}

// top returns the merchant with the highest cumulative spend; on ties the
// first-encountered merchant wins.
func (t *merchantTally) top() string {
	if len(t.order) == 0 {
		return ""
	}
	names := append([]string(nil), t.order...)
	sort.SliceStable(names, func(i, j int) bool {
		return t.totals[names[i]].GreaterThan(t.totals[names[j]])
	})
	return names[0]
}

// payeeName returns the transaction's merchant, falling back to its
// description when no merchant was recorded.
func payeeName(tx *models.Transaction) string {
	if tx.Merchant != "" {
		return tx.Merchant
	}
	return tx.Description
}
