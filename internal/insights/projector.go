package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// Event is a single dated occurrence of a recurring plan.
type Event struct {
	PlanID string                 `json:"plan_id"`
	Date   time.Time              `json:"date"`
	Amount decimal.Decimal        `json:"amount"`
	Type   models.TransactionType `json:"type"`
}

// ProjectEvents expands the given plans into dated events for every day in
// [rangeStart, rangeEnd] inclusive. A monthly plan emits at most one event
// per month: the day its specifier resolves to, provided that day exists in
// the month and is not past the plan's end date. An event falling on the end
// date itself is still emitted; a resolved day after it is suppressed for
// that month entirely.
func ProjectEvents(plans []models.RecurringPlan, rangeStart, rangeEnd time.Time) ([]Event, error) {
	events := []Event{}
	end := dayOf(rangeEnd)
	for d := dayOf(rangeStart); !d.After(end); d = d.AddDate(0, 0, 1) {
		for i := range plans {
			plan := &plans[i]
			day, err := ResolveDay(plan.ExpectedDate, d.Year(), d.Month())
			if err != nil {
				return nil, fmt.Errorf("plan %s (%s): %w", plan.ID, plan.Name, err)
			}
			if day != d.Day() {
				continue
			}
			if plan.EndDate != nil && d.After(dayOf(*plan.EndDate)) {
				continue
			}
			events = append(events, Event{
				PlanID: plan.ID,
				Date:   d,
				Amount: plan.Amount,
				Type:   plan.Type,
			})
		}
	}
	return events, nil
}
