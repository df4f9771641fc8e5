package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateDebt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		due := time.Now().AddDate(0, 1, 0)
		debt, err := svc.CreateDebt(user.ID, "Alex", decimal.NewFromInt(500), models.DebtDirectionPayable, &due)
		testutil.AssertNoError(t, err)

		if debt.ID == "" {
			t.Fatal("expected non-empty debt ID")
		}
		if debt.Status != models.DebtStatusActive {
			t.Errorf("expected active status, got %s", debt.Status)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateDebt(user.ID, "Alex", decimal.Zero, models.DebtDirectionPayable, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserDebts(t *testing.T) {
	t.Run("filter_by_status_and_direction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestDebt(t, db, user.ID, models.DebtDirectionPayable, 100, nil)
		receivable := testutil.CreateTestDebt(t, db, user.ID, models.DebtDirectionReceivable, 200, nil)
		if _, err := svc.MarkRepaid(user.ID, receivable.ID); err != nil {
			t.Fatalf("failed to mark debt repaid: %v", err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		active := models.DebtStatusActive
		result, err := svc.GetUserDebts(user.ID, page, &active, nil)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 active debt, got %d", result.TotalItems)
		}

		dir := models.DebtDirectionReceivable
		result, err = svc.GetUserDebts(user.ID, page, nil, &dir)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 receivable debt, got %d", result.TotalItems)
		}
	})
}

func TestMarkRepaid(t *testing.T) {
	t.Run("settles_active_debt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebt(t, db, user.ID, models.DebtDirectionPayable, 100, nil)

		repaid, err := svc.MarkRepaid(user.ID, debt.ID)
		testutil.AssertNoError(t, err)
		if repaid.Status != models.DebtStatusRepaid {
			t.Errorf("expected repaid status, got %s", repaid.Status)
		}
	})

	t.Run("repaying_twice_conflicts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebt(t, db, user.ID, models.DebtDirectionPayable, 100, nil)

		if _, err := svc.MarkRepaid(user.ID, debt.ID); err != nil {
			t.Fatalf("first repayment failed: %v", err)
		}
		_, err := svc.MarkRepaid(user.ID, debt.ID)
		testutil.AssertAppError(t, err, "DEBT_ALREADY_REPAID")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebt(t, db, user1.ID, models.DebtDirectionPayable, 100, nil)

		_, err := svc.MarkRepaid(user2.ID, debt.ID)
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}

func TestDeleteDebt(t *testing.T) {
	t.Run("deletes_and_hides", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDebtService(db)
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebt(t, db, user.ID, models.DebtDirectionPayable, 100, nil)

		testutil.AssertNoError(t, svc.DeleteDebt(user.ID, debt.ID))

		_, err := svc.GetDebtByID(user.ID, debt.ID)
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}
