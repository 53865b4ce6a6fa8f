package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"healthagentapi/models"
	"healthagentapi/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validForm() Form {
	f := NewForm()
	f.CustomerName = "Asha Rao"
	f.Dob = day(1990, 5, 1)
	f.Gender = models.GenderFemale
	f.Mobile = "9876543210"
	f.Email = "asha@example.com"
	f.Address = "12 MG Road, Bengaluru"
	f.PlanType = models.PlanIndividual
	f.PanNumber = "ABCDE1234F"
	f.MembersCount = 1
	f.MedicalConditions = "No"
	f.NomineeName = "Ravi Rao"
	f.Premium = "5000"
	f.PolicyStartDate = day(2025, 1, 1)
	return f
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL + "/")
	c.Now = func() time.Time { return today }
	return c, &hits
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestCreatePolicy_InvalidFormSendsNothing(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	form := validForm()
	form.PanNumber = "1234567890"
	form.Premium = "0"

	_, err := c.CreatePolicy(context.Background(), form)

	var ferr *FormError
	require.True(t, errors.As(err, &ferr), "got %v", err)
	assert.Equal(t, "Invalid PAN (e.g. ABCDE1234F).", ferr.Errors["panNumber"])
	assert.Equal(t, "Must be > 0.", ferr.Errors["premium"])
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestCreatePolicy_SendsFormattedPayload(t *testing.T) {
	var got dto.CreatePolicyRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/policies", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id": 42, "pan_number": got.PanNumber, "customer_name": got.CustomerName, "premium": "5000",
		})
	})

	policy, err := c.CreatePolicy(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, uint(42), policy.ID)
	assert.Equal(t, "ABCDE1234F", policy.PanNumber)
	assert.Equal(t, "1990-05-01", got.Dob)
	assert.Equal(t, "2025-01-01", got.PolicyStartDate)
	assert.Equal(t, dto.Amount("5000"), got.Premium)
	assert.Equal(t, DefaultAgentID, got.AgentID)
}

func TestCreatePolicy_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Policy already exists for this PAN number"})
	})

	_, err := c.CreatePolicy(context.Background(), validForm())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Policy already exists for this PAN number", apiErr.Message)
}

func TestCreatePolicy_APIErrorWithFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid field values",
			"fields":  []string{"email"},
			"details": map[string]string{"email": "Invalid email."},
		})
	})

	_, err := c.CreatePolicy(context.Background(), validForm())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"email"}, apiErr.Fields)
	assert.Equal(t, "Invalid email.", apiErr.Details["email"])
}

func TestListPolicies(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 2}, {"id": 1}})
	})

	policies, err := c.ListPolicies(context.Background())

	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, uint(2), policies[0].ID)
}

func TestListPolicies_NonJSONError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.ListPolicies(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}
