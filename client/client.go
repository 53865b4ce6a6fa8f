// Package client is a Go client for the policy API. It validates a form
// locally before sending it and keeps an optional local cache of policies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthagentapi/models"
	"healthagentapi/services/dto"
	"healthagentapi/validation"
)

const policiesPath = "/api/policies"

// DefaultAgentID is the agent identifier a new form starts with.
const DefaultAgentID = "AGENT-001"

// Form is a policy as entered by an agent. Dates are calendar dates; nil means not chosen.
type Form struct {
	CustomerName      string
	Dob               *time.Time
	Gender            string
	Mobile            string
	Email             string
	Address           string
	PlanType          string
	PanNumber         string
	MembersCount      int
	MedicalConditions string
	NomineeName       string
	Premium           string
	PolicyStartDate   *time.Time
	AgentID           string
}

// NewForm returns an empty form for the default agent.
func NewForm() Form {
	return Form{AgentID: DefaultAgentID}
}

func (f Form) submission() validation.Submission {
	return validation.Submission{
		CustomerName:      f.CustomerName,
		Dob:               f.Dob,
		Gender:            f.Gender,
		Mobile:            f.Mobile,
		Email:             f.Email,
		Address:           f.Address,
		PlanType:          f.PlanType,
		PanNumber:         f.PanNumber,
		MembersCount:      f.MembersCount,
		MedicalConditions: f.MedicalConditions,
		NomineeName:       f.NomineeName,
		Premium:           f.Premium,
		PolicyStartDate:   f.PolicyStartDate,
	}
}

// Validate checks the form against the form rules as of today.
func (f Form) Validate(today time.Time) validation.Errors {
	return validation.Validate(f.submission(), today)
}

func (f Form) request() dto.CreatePolicyRequest {
	req := dto.CreatePolicyRequest{
		CustomerName:      f.CustomerName,
		Gender:            f.Gender,
		Mobile:            f.Mobile,
		Email:             f.Email,
		Address:           f.Address,
		PlanType:          f.PlanType,
		PanNumber:         strings.ToUpper(f.PanNumber),
		MembersCount:      f.MembersCount,
		MedicalConditions: f.MedicalConditions,
		NomineeName:       f.NomineeName,
		Premium:           dto.Amount(f.Premium),
		AgentID:           f.AgentID,
	}
	if f.Dob != nil {
		req.Dob = f.Dob.Format(validation.DateLayout)
	}
	if f.PolicyStartDate != nil {
		req.PolicyStartDate = f.PolicyStartDate.Format(validation.DateLayout)
	}
	return req
}

// FormError is returned by CreatePolicy when the form fails local validation.
// Nothing is sent in that case.
type FormError struct {
	Errors validation.Errors
}

func (e *FormError) Error() string {
	return "invalid form: " + e.Errors.Error()
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int               `json:"-"`
	Message string            `json:"error"`
	Fields  []string          `json:"fields"`
	Details map[string]string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("policy api: %d %s", e.Status, e.Message)
}

// Client calls the policy API at BaseURL, e.g. "http://localhost:3001".
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Now supplies today's date for form validation; nil means time.Now.
	Now func() time.Time
}

// New returns a client for baseURL with a 10 second request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) today() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// ListPolicies fetches every policy, most recent first.
func (c *Client) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+policiesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	policies := []models.Policy{}
	if err := c.do(req, http.StatusOK, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// CreatePolicy validates form and, if it passes, submits it. A form that
// fails validation returns *FormError without any request being made.
func (c *Client) CreatePolicy(ctx context.Context, form Form) (*models.Policy, error) {
	if errs := form.Validate(c.today()); len(errs) > 0 {
		return nil, &FormError{Errors: errs}
	}

	body, err := json.Marshal(form.request())
	if err != nil {
		return nil, fmt.Errorf("encode policy: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+policiesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var policy models.Policy
	if err := c.do(req, http.StatusCreated, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (c *Client) do(req *http.Request, want int, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != want {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
