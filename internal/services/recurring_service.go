package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/insights"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// recurringService handles recurring-plan business logic.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringPlanServicer.
func NewRecurringService(db *gorm.DB) RecurringPlanServicer {
	return &recurringService{db: db}
}

// validateExpectedDate rejects expected dates the projector cannot resolve.
// Sentinels resolve for an arbitrary probe month; numeric days must fall in
// 1..31 since the resolver itself is clamp-free.
func validateExpectedDate(expectedDate string) error {
	day, err := insights.ResolveDay(expectedDate, 2024, time.January)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPlanConfiguration, err)
	}
	if day < 1 || day > 31 {
		return apperrors.WithMessage(apperrors.ErrPlanConfiguration, "expected date must be a day between 1 and 31")
	}
	return nil
}

// CreatePlan creates a new recurring plan.
func (s *recurringService) CreatePlan(
	userID, name string,
	amount decimal.Decimal,
	planType models.TransactionType,
	frequency models.PlanFrequency,
	expectedDate string,
	endDate *time.Time,
	metadata string,
) (*models.RecurringPlan, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if err := validateExpectedDate(expectedDate); err != nil {
		return nil, err
	}
	if frequency == "" {
		frequency = models.PlanFrequencyMonthly
	}

	plan := &models.RecurringPlan{
		UserID:       userID,
		Name:         name,
		Amount:       amount,
		Type:         planType,
		Frequency:    frequency,
		ExpectedDate: expectedDate,
		EndDate:      endDate,
		Metadata:     metadata,
	}

	if err := s.db.Create(plan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return plan, nil
}

// GetUserPlans returns a paginated list of the user's plans with an optional type filter.
func (s *recurringService) GetUserPlans(
	userID string,
	page pagination.PageRequest,
	planType *models.TransactionType,
) (*pagination.PageResponse[models.RecurringPlan], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringPlan{}).Where("user_id = ?", userID)
	if planType != nil {
		base = base.Where("type = ?", *planType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var plans []models.RecurringPlan
	if err := base.Order("created_at ASC").Scopes(pagination.Paginate(page)).Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(plans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPlanByID returns a plan by ID if it belongs to the user.
func (s *recurringService) GetPlanByID(userID, planID string) (*models.RecurringPlan, error) {
	var plan models.RecurringPlan
	if err := s.db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// UpdatePlan updates an existing plan's fields.
func (s *recurringService) UpdatePlan(
	userID, planID, name string,
	amount *decimal.Decimal,
	expectedDate string,
	endDate *time.Time,
) (*models.RecurringPlan, error) {
	plan, err := s.GetPlanByID(userID, planID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		if amount.IsNegative() || amount.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if expectedDate != "" {
		if err := validateExpectedDate(expectedDate); err != nil {
			return nil, err
		}
		updates["expected_date"] = expectedDate
	}
	if endDate != nil {
		updates["end_date"] = endDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(plan).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return plan, nil
}

// DeletePlan soft-deletes a plan.
func (s *recurringService) DeletePlan(userID, planID string) error {
	plan, err := s.GetPlanByID(userID, planID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(plan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
