package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// ValidAccountTypes contains the allowed account type values.
var ValidAccountTypes = map[string]bool{
	model.AccountBrokerage:  true,
	model.AccountBank:       true,
	model.AccountCrypto:     true,
	model.AccountRetirement: true,
}

// ValidSipStatus contains the allowed SIP status values.
var ValidSipStatus = map[string]bool{
	"active": true, "paused": true,
}

// ValidateCreateAccount validates an account creation request.
//
// Required fields:
//   - name: non-empty, at most 100 characters
//   - accountType: one of BROKERAGE, BANK, CRYPTO, RETIREMENT
//
// Optional fields (validated if provided):
//   - currency: 3 letter code
//   - accountNumber: at most 34 characters
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if name := strings.TrimSpace(req.Name); name == "" {
		errors["name"] = "name is required"
	} else if len(name) > 100 {
		errors["name"] = "name must be at most 100 characters"
	}

	if strings.TrimSpace(req.AccountType) == "" {
		errors["accountType"] = "accountType is required"
	} else if !ValidAccountTypes[strings.ToUpper(req.AccountType)] {
		errors["accountType"] = fmt.Sprintf("invalid accountType: %s", req.AccountType)
	}

	if req.Currency != "" && len(strings.TrimSpace(req.Currency)) != 3 {
		errors["currency"] = "currency must be a 3 letter code"
	}

	if len(req.AccountNumber) > 34 {
		errors["accountNumber"] = "accountNumber must be at most 34 characters"
	}

	return asError(errors)
}

// ValidateCreateGoal validates a goal creation request.
//
// Required fields:
//   - name: non-empty
//   - targetAmount: positive
//   - deadline: YYYY-MM-DD
//
// currentAmount and monthlyContribution must not be negative.
func ValidateCreateGoal(req request.CreateGoalRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if !req.TargetAmount.IsPositive() {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if req.CurrentAmount.IsNegative() {
		errors["currentAmount"] = "currentAmount cannot be negative"
	}

	if req.MonthlyContribution.IsNegative() {
		errors["monthlyContribution"] = "monthlyContribution cannot be negative"
	}

	if strings.TrimSpace(req.Deadline) == "" {
		errors["deadline"] = "deadline is required"
	} else if _, err := ParseDate(req.Deadline); err != nil {
		errors["deadline"] = err.Error()
	}

	return asError(errors)
}

// ValidateCreateSip validates a SIP creation request.
//
// Required fields:
//   - fund: non-empty
//   - amount: positive
//   - nextDate: YYYY-MM-DD
//
// Optional fields (validated if provided):
//   - status: active or paused
func ValidateCreateSip(req request.CreateSipRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Fund) == "" {
		errors["fund"] = "fund is required"
	}

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.NextDate) == "" {
		errors["nextDate"] = "nextDate is required"
	} else if _, err := ParseDate(req.NextDate); err != nil {
		errors["nextDate"] = err.Error()
	}

	if req.Status != "" && !ValidSipStatus[strings.ToLower(req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	return asError(errors)
}
