package integration

import (
	"net/http"
	"testing"
)

func TestDebtFlow_CreateRepayFilter(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "debt@test.com", "password123")

	// Step 1: Create a payable and a receivable
	rec := app.request("POST", "/api/v1/debts",
		`{"person_name":"Alex","amount":500,"direction":"payable","due_date":"2025-07-20T00:00:00Z"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create payable failed: %d %s", rec.Code, rec.Body.String())
	}
	payableID := parseJSON(t, rec)["debt"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/debts",
		`{"person_name":"Sam","amount":200,"direction":"receivable"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create receivable failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 2: Filter by direction
	rec = app.request("GET", "/api/v1/debts?direction=payable", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 payable debt")
	}

	// Step 3: Repay the payable
	rec = app.request("POST", "/api/v1/debts/"+payableID+"/repay", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("repay failed: %d %s", rec.Code, rec.Body.String())
	}
	debt := parseJSON(t, rec)["debt"].(map[string]interface{})
	if debt["status"] != "repaid" {
		t.Errorf("expected repaid, got %v", debt["status"])
	}

	// Step 4: Repaying again conflicts
	rec = app.request("POST", "/api/v1/debts/"+payableID+"/repay", "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second repay, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "DEBT_ALREADY_REPAID" {
		t.Errorf("expected DEBT_ALREADY_REPAID, got %v", errObj["code"])
	}

	// Step 5: Only the active debt remains under the status filter
	rec = app.request("GET", "/api/v1/debts?status=active", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 active debt after repayment")
	}
}

func TestGoalFlow_CreateContributeDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "goal@test.com", "password123")

	// Step 1: Create a goal
	rec := app.request("POST", "/api/v1/goals",
		`{"name":"Emergency Fund","target_amount":10000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	goalID := goal["id"].(string)
	if goal["saved_amount"].(string) != "0" {
		t.Errorf("expected saved_amount 0, got %v", goal["saved_amount"])
	}

	// Step 2: Contribute twice
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/contribute", `{"amount":250}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("first contribution failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/contribute", `{"amount":49.50}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("second contribution failed: %d %s", rec.Code, rec.Body.String())
	}
	goal = parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["saved_amount"].(string) != "299.5" {
		t.Errorf("expected saved_amount 299.5, got %v", goal["saved_amount"])
	}

	// Step 3: Delete and confirm it is gone
	rec = app.request("DELETE", "/api/v1/goals/"+goalID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/goals/"+goalID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRecurringPlanFlow_CreateUpdateValidation(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "plan@test.com", "password123")

	rec := app.request("POST", "/api/v1/recurring-plans",
		`{"name":"Salary","amount":5000,"type":"income","expected_date":"last-working"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	plan := parseJSON(t, rec)["plan"].(map[string]interface{})
	planID := plan["id"].(string)
	if plan["frequency"] != "monthly" {
		t.Errorf("expected frequency to default to monthly, got %v", plan["frequency"])
	}

	// Update to a plain day of month
	rec = app.request("PUT", "/api/v1/recurring-plans/"+planID,
		`{"expected_date":"28"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	plan = parseJSON(t, rec)["plan"].(map[string]interface{})
	if plan["expected_date"] != "28" {
		t.Errorf("expected expected_date 28, got %v", plan["expected_date"])
	}

	// Out-of-range day is rejected at the binding layer
	rec = app.request("POST", "/api/v1/recurring-plans",
		`{"name":"Broken","amount":10,"type":"expense","expected_date":"32"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
