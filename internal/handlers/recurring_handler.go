package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// RecurringHandler handles recurring-plan requests.
type RecurringHandler struct {
	planService  services.RecurringPlanServicer
	auditService services.AuditServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(planService services.RecurringPlanServicer, auditService services.AuditServicer) *RecurringHandler {
	return &RecurringHandler{planService: planService, auditService: auditService}
}

// CreatePlanRequest represents the request payload for creating a recurring plan.
type CreatePlanRequest struct {
	Name         string                 `json:"name" binding:"required,min=1,max=100"`
	Amount       float64                `json:"amount" binding:"required,gt=0"`
	Type         models.TransactionType `json:"type" binding:"required,transaction_type"`
	Frequency    models.PlanFrequency   `json:"frequency" binding:"omitempty,plan_frequency"`
	ExpectedDate string                 `json:"expected_date" binding:"required,expected_date"`
	EndDate      *time.Time             `json:"end_date"`
	Metadata     string                 `json:"metadata" binding:"max=1000"`
}

// UpdatePlanRequest represents the request payload for updating a recurring plan.
type UpdatePlanRequest struct {
	Name         string     `json:"name" binding:"omitempty,min=1,max=100"`
	Amount       *float64   `json:"amount" binding:"omitempty,gt=0"`
	ExpectedDate string     `json:"expected_date" binding:"omitempty,expected_date"`
	EndDate      *time.Time `json:"end_date"`
}

// CreatePlan handles the creation of a new recurring plan.
// @Summary     Create a recurring plan
// @Description Create a new monthly recurring income or expense plan
// @Tags        recurring-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePlanRequest true "Plan details"
// @Success     201 {object} models.RecurringPlan "Plan created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Invalid expected date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-plans [post]
func (h *RecurringHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(
		userID, req.Name, decimal.NewFromFloat(req.Amount), req.Type,
		req.Frequency, req.ExpectedDate, req.EndDate, req.Metadata,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PLAN", "recurring_plan", plan.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": req.Amount, "expected_date": req.ExpectedDate})

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// GetPlans handles listing recurring plans for the authenticated user.
// @Summary     Get recurring plans
// @Description Get a paginated list of recurring plans for the authenticated user
// @Tags        recurring-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Filter by type (income/expense)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.RecurringPlan] "Paginated plans"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-plans [get]
func (h *RecurringHandler) GetPlans(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var planType *models.TransactionType
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'income' or 'expense'"))
			return
		}
		planType = &t
	}

	result, err := h.planService.GetUserPlans(userID, page, planType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlan handles retrieving a specific recurring plan.
// @Summary     Get recurring plan by ID
// @Description Get a specific recurring plan by ID
// @Tags        recurring-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Plan ID"
// @Success     200 {object} models.RecurringPlan "Plan details"
// @Failure     400 {object} ErrorResponse "Invalid plan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-plans/{id} [get]
func (h *RecurringHandler) GetPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.GetPlanByID(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// UpdatePlan handles updating an existing recurring plan.
// @Summary     Update recurring plan
// @Description Update an existing recurring plan
// @Tags        recurring-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Plan ID"
// @Param       request body UpdatePlanRequest true "Updated plan details"
// @Success     200 {object} models.RecurringPlan "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid input or plan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     422 {object} ErrorResponse "Invalid expected date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-plans/{id} [put]
func (h *RecurringHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var amount *decimal.Decimal
	if req.Amount != nil {
		d := decimal.NewFromFloat(*req.Amount)
		amount = &d
	}

	plan, err := h.planService.UpdatePlan(userID, planID, req.Name, amount, req.ExpectedDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PLAN", "recurring_plan", planID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan handles deleting a recurring plan.
// @Summary     Delete recurring plan
// @Description Delete a recurring plan by ID (soft delete)
// @Tags        recurring-plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Plan ID"
// @Success     200 {object} MessageResponse "Plan deleted"
// @Failure     400 {object} ErrorResponse "Invalid plan ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-plans/{id} [delete]
func (h *RecurringHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeletePlan(userID, planID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PLAN", "recurring_plan", planID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring plan deleted successfully"})
}
