package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Count    int    `json:"count,omitempty" validate:"required"`
	Optional string `json:"optional"`
	Untagged string `validate:"required"`
}

func TestValidateStruct_ReportsJSONNames(t *testing.T) {
	err := ValidateStruct(&sample{})
	require.Error(t, err)

	assert.Equal(t, []string{"name", "count", "Untagged"}, MissingFields(err))
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&sample{Name: "a", Count: 1, Untagged: "x"})
	assert.NoError(t, err)
	assert.Nil(t, MissingFields(err))
}

func TestMissingFields_OtherErrors(t *testing.T) {
	assert.Nil(t, MissingFields(errors.New("boom")))
}
