// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("necessity", validateNecessity)
		_ = v.RegisterValidation("debt_direction", validateDebtDirection)
		_ = v.RegisterValidation("debt_status", validateDebtStatus)
		_ = v.RegisterValidation("plan_frequency", validatePlanFrequency)
		_ = v.RegisterValidation("expected_date", validateExpectedDate)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateNecessity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "variable":
		return true
	}
	return false
}

func validateDebtDirection(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "payable", "receivable":
		return true
	}
	return false
}

func validateDebtStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "repaid":
		return true
	}
	return false
}

func validatePlanFrequency(fl validator.FieldLevel) bool {
	return fl.Field().String() == "monthly"
}

// validateExpectedDate accepts "1".."31" and the "last"/"last-working" sentinels.
func validateExpectedDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	switch s {
	case "last", "last-working":
		return true
	}
	day, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return day >= 1 && day <= 31
}
