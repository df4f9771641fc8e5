package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/insights"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Necessity *models.Necessity
	Category  *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, txType models.TransactionType, amount decimal.Decimal, category, merchant, description string, necessity models.Necessity, remarks string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID, category string, amount *decimal.Decimal, merchant, description, remarks *string, necessity *models.Necessity, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// RecurringPlanServicer defines the contract for recurring-plan business logic.
type RecurringPlanServicer interface {
	CreatePlan(userID, name string, amount decimal.Decimal, planType models.TransactionType, frequency models.PlanFrequency, expectedDate string, endDate *time.Time, metadata string) (*models.RecurringPlan, error)
	GetUserPlans(userID string, page pagination.PageRequest, planType *models.TransactionType) (*pagination.PageResponse[models.RecurringPlan], error)
	GetPlanByID(userID, planID string) (*models.RecurringPlan, error)
	UpdatePlan(userID, planID, name string, amount *decimal.Decimal, expectedDate string, endDate *time.Time) (*models.RecurringPlan, error)
	DeletePlan(userID, planID string) error
}

// DebtServicer defines the contract for debt-related business logic.
type DebtServicer interface {
	CreateDebt(userID, personName string, amount decimal.Decimal, direction models.DebtDirection, dueDate *time.Time) (*models.Debt, error)
	GetUserDebts(userID string, page pagination.PageRequest, status *models.DebtStatus, direction *models.DebtDirection) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID string) (*models.Debt, error)
	UpdateDebt(userID, debtID, personName string, amount *decimal.Decimal, dueDate *time.Time) (*models.Debt, error)
	MarkRepaid(userID, debtID string) (*models.Debt, error)
	DeleteDebt(userID, debtID string) error
}

// SavingsGoalServicer defines the contract for savings-goal business logic.
type SavingsGoalServicer interface {
	CreateGoal(userID, name string, targetAmount decimal.Decimal, targetDate *time.Time) (*models.SavingsGoal, error)
	GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsGoal], error)
	GetGoalByID(userID, goalID string) (*models.SavingsGoal, error)
	UpdateGoal(userID, goalID, name string, targetAmount *decimal.Decimal, targetDate *time.Time) (*models.SavingsGoal, error)
	Contribute(userID, goalID string, amount decimal.Decimal) (*models.SavingsGoal, error)
	DeleteGoal(userID, goalID string) error
}

// CategorySpend is one category's expense total within a month.
type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlySummary aggregates a single calendar month of activity.
type MonthlySummary struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
	BudgetHealth decimal.Decimal `json:"budget_health"` // expense as a share of income; zero when no income
	ByCategory   []CategorySpend `json:"by_category"`
}

// InsightServicer defines the contract for derived-insight computations.
type InsightServicer interface {
	Forecast(userID string, fromDate time.Time, horizonWeeks int) ([]insights.ForecastWeek, error)
	Leaks(userID string, referenceDate time.Time) ([]insights.Leak, error)
	Subscriptions(userID string) ([]insights.SubscriptionCandidate, error)
	SafeToSpend(userID string, referenceDate time.Time) (*insights.SafeToSpend, error)
	MonthlySummary(userID string, year int, month time.Month) (*MonthlySummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
