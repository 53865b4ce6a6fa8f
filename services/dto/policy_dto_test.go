package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		body string
		want Amount
	}{
		{`{"premium": 5000}`, "5000"},
		{`{"premium": 5000.50}`, "5000.50"},
		{`{"premium": "0.01"}`, "0.01"},
		{`{"premium": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var req CreatePolicyRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.want, req.Premium, tt.body)
	}
}

func TestAmount_RejectsOtherTypes(t *testing.T) {
	var req CreatePolicyRequest
	err := json.Unmarshal([]byte(`{"premium": true}`), &req)

	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAmount_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(CreatePolicyRequest{Premium: "12.5"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"premium":"12.5"`)
}
