package integration

import (
	"net/http"
	"testing"
)

// seedInsightData sets up a user with past income, a monthly rent plan,
// and two identical subscription-sized charges.
func seedInsightData(t *testing.T, app *testApp) string {
	t.Helper()
	token, _, _ := app.registerUser(t, "insight@test.com", "password123")

	fixtures := []string{
		`{"type":"income","amount":10000,"category":"Salary","date":"2025-05-01T00:00:00Z"}`,
		`{"type":"expense","amount":15.99,"category":"Entertainment","merchant":"StreamCo","date":"2025-04-12T00:00:00Z"}`,
		`{"type":"expense","amount":15.99,"category":"Entertainment","merchant":"StreamCo","date":"2025-05-12T00:00:00Z"}`,
	}
	for _, body := range fixtures {
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed transaction failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("POST", "/api/v1/recurring-plans",
		`{"name":"Rent","amount":3000,"type":"expense","expected_date":"5"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed plan failed: %d %s", rec.Code, rec.Body.String())
	}
	return token
}

func TestInsightFlow_Forecast(t *testing.T) {
	app := setupApp(t)
	token := seedInsightData(t, app)

	rec := app.request("GET", "/api/v1/insights/forecast?from=2025-06-02&weeks=2", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("forecast failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	weeks := result["forecast"].([]interface{})
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}

	// Opening balance is 10000 income minus 31.98 of past charges. Rent lands
	// on June 5, inside the first window.
	week1 := weeks[0].(map[string]interface{})
	if week1["expense"].(string) != "3000" {
		t.Errorf("expected first week expense 3000, got %v", week1["expense"])
	}
	if week1["balance"].(string) != "6968.02" {
		t.Errorf("expected first week balance 6968.02, got %v", week1["balance"])
	}
	if week1["is_danger"].(bool) {
		t.Error("did not expect danger flag on first week")
	}

	// No events in the second window, balance carries over.
	week2 := weeks[1].(map[string]interface{})
	if week2["balance"].(string) != "6968.02" {
		t.Errorf("expected second week balance 6968.02, got %v", week2["balance"])
	}
}

func TestInsightFlow_ForecastRejectsMisconfiguredPlan(t *testing.T) {
	app := setupApp(t)
	token := seedInsightData(t, app)

	// A plan with a broken expected_date cannot enter through the API, so
	// write it straight to the database the way legacy imports might.
	if err := app.DB.Exec(
		`UPDATE recurring_plans SET expected_date = 'not-a-day' WHERE name = 'Rent'`,
	).Error; err != nil {
		t.Fatalf("failed to corrupt plan: %v", err)
	}

	rec := app.request("GET", "/api/v1/insights/forecast?from=2025-06-02", "", token)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "CONFIGURATION_ERROR" {
		t.Errorf("expected CONFIGURATION_ERROR, got %v", errObj["code"])
	}
}

func TestInsightFlow_Subscriptions(t *testing.T) {
	app := setupApp(t)
	token := seedInsightData(t, app)

	rec := app.request("GET", "/api/v1/insights/subscriptions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscriptions failed: %d %s", rec.Code, rec.Body.String())
	}
	subs := parseJSON(t, rec)["subscriptions"].([]interface{})
	if len(subs) != 1 {
		t.Fatalf("expected 1 subscription candidate, got %d", len(subs))
	}
	sub := subs[0].(map[string]interface{})
	if sub["name"] != "StreamCo" {
		t.Errorf("expected StreamCo, got %v", sub["name"])
	}
	if sub["frequency"] != "Monthly (Fixed)" {
		t.Errorf("expected Monthly (Fixed), got %v", sub["frequency"])
	}

	// A plan whose name contains the merchant suppresses the candidate.
	rec = app.request("POST", "/api/v1/recurring-plans",
		`{"name":"StreamCo Premium","amount":15.99,"type":"expense","expected_date":"12"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("plan create failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/insights/subscriptions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("subscriptions failed: %d %s", rec.Code, rec.Body.String())
	}
	subs = parseJSON(t, rec)["subscriptions"].([]interface{})
	if len(subs) != 0 {
		t.Errorf("expected candidate to be suppressed by matching plan, got %d", len(subs))
	}
}

func TestInsightFlow_Leaks(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "leaks@test.com", "password123")

	// Three months of history averaging 1000 in Dining, then a spike.
	fixtures := []string{
		`{"type":"expense","amount":1000,"category":"Dining","date":"2025-03-10T00:00:00Z"}`,
		`{"type":"expense","amount":1000,"category":"Dining","date":"2025-04-10T00:00:00Z"}`,
		`{"type":"expense","amount":1000,"category":"Dining","date":"2025-05-10T00:00:00Z"}`,
		`{"type":"expense","amount":2600,"category":"Dining","date":"2025-06-10T00:00:00Z"}`,
	}
	for _, body := range fixtures {
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed transaction failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/insights/leaks?date=2025-06-15", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaks failed: %d %s", rec.Code, rec.Body.String())
	}
	leaks := parseJSON(t, rec)["leaks"].([]interface{})
	if len(leaks) != 1 {
		t.Fatalf("expected 1 leak, got %d", len(leaks))
	}
	leak := leaks[0].(map[string]interface{})
	if leak["category"] != "Dining" {
		t.Errorf("expected Dining, got %v", leak["category"])
	}
}

func TestInsightFlow_SafeToSpendAndSummary(t *testing.T) {
	app := setupApp(t)
	token := seedInsightData(t, app)

	rec := app.request("GET", "/api/v1/insights/safe-to-spend?date=2025-06-10", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("safe-to-spend failed: %d %s", rec.Code, rec.Body.String())
	}
	sts := parseJSON(t, rec)["safe_to_spend"].(map[string]interface{})
	if sts["days_left"].(float64) != 21 {
		t.Errorf("expected 21 days left on June 10, got %v", sts["days_left"])
	}

	rec = app.request("GET", "/api/v1/insights/summary?year=2025&month=5", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["income"].(string) != "10000" {
		t.Errorf("expected income 10000, got %v", summary["income"])
	}
	if summary["expense"].(string) != "15.99" {
		t.Errorf("expected expense 15.99, got %v", summary["expense"])
	}
}
