package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

const (
	defaultForecastWeeks = 8
	maxForecastWeeks     = 52
)

// InsightHandler serves derived views over the user's financial data.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter, defaulting to now.
func parseDateQuery(c *gin.Context, param string) (time.Time, error) {
	v := c.Query(param)
	if v == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

// GetForecast handles the weekly cash-flow forecast.
// @Summary     Get cash-flow forecast
// @Description Project the running balance over upcoming weekly windows
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       weeks query int    false "Number of weeks to project (default 8, max 52)"
// @Param       from  query string false "Start date YYYY-MM-DD (default today)"
// @Success     200 {array}  insights.ForecastWeek "Weekly forecast"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "A recurring plan is misconfigured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/forecast [get]
func (h *InsightHandler) GetForecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	weeks := defaultForecastWeeks
	if v := c.Query("weeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxForecastWeeks {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "weeks must be between 1 and 52"))
			return
		}
		weeks = n
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}

	forecast, err := h.insightService.Forecast(userID, from, weeks)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// GetLeaks handles spending leak detection.
// @Summary     Get spending leaks
// @Description Flag categories where variable spending runs well above its monthly average
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Reference date YYYY-MM-DD (default today)"
// @Success     200 {array}  insights.Leak "Detected leaks, largest overage first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/leaks [get]
func (h *InsightHandler) GetLeaks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	leaks, err := h.insightService.Leaks(userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaks": leaks})
}

// GetSubscriptions handles subscription candidate detection.
// @Summary     Get subscription candidates
// @Description Surface repeated merchant charges not yet tracked by a recurring plan
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  insights.SubscriptionCandidate "Subscription candidates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/subscriptions [get]
func (h *InsightHandler) GetSubscriptions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	candidates, err := h.insightService.Subscriptions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": candidates})
}

// GetSafeToSpend handles the daily discretionary budget.
// @Summary     Get safe-to-spend
// @Description Compute the daily discretionary amount for the rest of the month
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string false "Reference date YYYY-MM-DD (default today)"
// @Success     200 {object} insights.SafeToSpend "Safe-to-spend breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "A recurring plan is misconfigured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/safe-to-spend [get]
func (h *InsightHandler) GetSafeToSpend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sts, err := h.insightService.SafeToSpend(userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"safe_to_spend": sts})
}

// GetSummary handles the monthly summary.
// @Summary     Get monthly summary
// @Description Aggregate income, expenses and category breakdown for one month
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights/summary [get]
func (h *InsightHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1970 || n > 9999 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a valid year"))
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12"))
			return
		}
		month = time.Month(n)
	}

	summary, err := h.insightService.MonthlySummary(userID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
