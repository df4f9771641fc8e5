package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		Type:      txType,
		Amount:    decimal.NewFromFloat(amount),
		Category:  "General",
		Necessity: models.NecessityVariable,
		Date:      date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPlan creates a monthly recurring plan with the given expected date.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID string, planType models.TransactionType, amount float64, expectedDate string) *models.RecurringPlan {
	t.Helper()

	plan := &models.RecurringPlan{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Plan %d", nextID()),
		Amount:       decimal.NewFromFloat(amount),
		Type:         planType,
		Frequency:    models.PlanFrequencyMonthly,
		ExpectedDate: expectedDate,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestDebt creates an active debt due on the given date.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, direction models.DebtDirection, amount float64, dueDate *time.Time) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		UserID:     userID,
		PersonName: fmt.Sprintf("Test Person %d", nextID()),
		Amount:     decimal.NewFromFloat(amount),
		Direction:  direction,
		DueDate:    dueDate,
		Status:     models.DebtStatusActive,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoal creates a savings goal with the given target.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target float64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: decimal.NewFromFloat(target),
		SavedAmount:  decimal.Zero,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
