package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/cache"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/insights"
	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// forecastCacheTTL bounds staleness of cached forecasts. There is no
// invalidation on writes; a minute-old forecast is acceptable.
const forecastCacheTTL = 60 * time.Second

// insightService composes the pure insight computations with database loads
// and an optional Redis cache for the forecast endpoint.
type insightService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewInsightService creates a new InsightServicer. cache may be nil, in which
// case every forecast is computed fresh.
func NewInsightService(db *gorm.DB, c *cache.Cache) InsightServicer {
	return &insightService{db: db, cache: c}
}

// loadTransactions returns all of the user's transactions, oldest first.
func (s *insightService) loadTransactions(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func (s *insightService) loadPlans(userID string) ([]models.RecurringPlan, error) {
	var plans []models.RecurringPlan
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return plans, nil
}

func (s *insightService) loadDebts(userID string) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

// currentBalance derives the user's balance from recorded history:
// total income minus total expense across all transactions.
func currentBalance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		if tx.Amount.IsNegative() {
			continue
		}
		if tx.Type == models.TransactionTypeIncome {
			balance = balance.Add(tx.Amount)
		} else {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// Forecast projects the user's cash flow over horizonWeeks weekly windows.
// Results are cached briefly per user, start date and horizon.
func (s *insightService) Forecast(userID string, fromDate time.Time, horizonWeeks int) ([]insights.ForecastWeek, error) {
	key := fmt.Sprintf("forecast:%s:%s:%d", userID, fromDate.Format("2006-01-02"), horizonWeeks)
	if s.cache != nil {
		if raw, ok := s.cache.Get(context.Background(), key); ok {
			var weeks []insights.ForecastWeek
			if err := json.Unmarshal([]byte(raw), &weeks); err == nil {
				return weeks, nil
			}
			logger.Get().Warnw("discarding unreadable cached forecast", "key", key)
		}
	}

	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	plans, err := s.loadPlans(userID)
	if err != nil {
		return nil, err
	}
	debts, err := s.loadDebts(userID)
	if err != nil {
		return nil, err
	}

	// One-off transactions dated on or after the forecast start contribute to
	// their window; everything earlier is already part of the opening balance.
	opening := decimal.Zero
	var upcoming []models.Transaction
	startDay := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, fromDate.Location())
	for i := range transactions {
		tx := transactions[i]
		txDay := time.Date(tx.Date.Year(), tx.Date.Month(), tx.Date.Day(), 0, 0, 0, 0, tx.Date.Location())
		if txDay.Before(startDay) {
			if tx.Amount.IsNegative() {
				continue
			}
			if tx.Type == models.TransactionTypeIncome {
				opening = opening.Add(tx.Amount)
			} else {
				opening = opening.Sub(tx.Amount)
			}
		} else {
			upcoming = append(upcoming, tx)
		}
	}

	weeks, err := insights.Forecast(opening, plans, upcoming, debts, horizonWeeks, fromDate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPlanConfiguration, err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(weeks); err == nil {
			if err := s.cache.Set(context.Background(), key, string(data), forecastCacheTTL); err != nil {
				logger.Get().Warnw("failed to cache forecast", "key", key, "error", err)
			}
		}
	}

	return weeks, nil
}

// Leaks flags categories where this month's variable spending runs well above
// its historical average.
func (s *insightService) Leaks(userID string, referenceDate time.Time) ([]insights.Leak, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	return insights.DetectLeaks(transactions, referenceDate), nil
}

// Subscriptions surfaces repeated merchant charges not yet tracked by a plan.
func (s *insightService) Subscriptions(userID string) ([]insights.SubscriptionCandidate, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	plans, err := s.loadPlans(userID)
	if err != nil {
		return nil, err
	}
	return insights.FindSubscriptions(transactions, plans), nil
}

// SafeToSpend computes the daily discretionary amount for the rest of the month.
func (s *insightService) SafeToSpend(userID string, referenceDate time.Time) (*insights.SafeToSpend, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, err
	}
	plans, err := s.loadPlans(userID)
	if err != nil {
		return nil, err
	}
	debts, err := s.loadDebts(userID)
	if err != nil {
		return nil, err
	}

	sts, err := insights.ComputeSafeToSpend(currentBalance(transactions), plans, debts, referenceDate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPlanConfiguration, err)
	}
	return &sts, nil
}

// MonthlySummary aggregates one calendar month: totals, net, expense share of
// income, and a per-category expense breakdown sorted by amount descending.
func (s *insightService) MonthlySummary(userID string, year int, month time.Month) (*MonthlySummary, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	income, expense := decimal.Zero, decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for i := range transactions {
		tx := &transactions[i]
		if tx.Amount.IsNegative() {
			continue
		}
		if tx.Type == models.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	categories := make([]CategorySpend, 0, len(byCategory))
	for category, amount := range byCategory {
		categories = append(categories, CategorySpend{Category: category, Amount: amount})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	health := decimal.Zero
	if income.IsPositive() {
		health = expense.DivRound(income, 4)
	}

	return &MonthlySummary{
		Year:         year,
		Month:        int(month),
		Income:       income,
		Expense:      expense,
		Net:          income.Sub(expense),
		BudgetHealth: health,
		ByCategory:   categories,
	}, nil
}
