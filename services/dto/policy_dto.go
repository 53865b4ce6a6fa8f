package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned when an amount is neither a JSON number nor a string.
var ErrInvalidAmount = errors.New("amount must be a number or numeric string")

// CreatePolicyRequest is the JSON body of POST /api/policies.
// validate:"required" marks the fields whose absence is reported as missing;
// agentId and medicalConditions are checked separately.
type CreatePolicyRequest struct {
	CustomerName      string `json:"customerName" validate:"required"`
	Dob               string `json:"dob" validate:"required"`
	Gender            string `json:"gender" validate:"required"`
	Mobile            string `json:"mobile" validate:"required"`
	Email             string `json:"email" validate:"required"`
	Address           string `json:"address" validate:"required"`
	PlanType          string `json:"planType" validate:"required"`
	PanNumber         string `json:"panNumber" validate:"required"`
	MembersCount      int    `json:"membersCount" validate:"required"`
	MedicalConditions string `json:"medicalConditions"`
	NomineeName       string `json:"nomineeName" validate:"required"`
	Premium           Amount `json:"premium" validate:"required"`
	PolicyStartDate   string `json:"policyStartDate" validate:"required"`
	AgentID           string `json:"agentId"`
}

// Amount is a decimal value sent either as a JSON number or a numeric string.
// It keeps the literal text; parsing happens during validation.
type Amount string

// UnmarshalJSON accepts 5000, 5000.5, "5000" and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	*a = Amount(n.String())
	return nil
}

// MarshalJSON writes the amount as a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}
