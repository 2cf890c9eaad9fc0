package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationQuery_DefaultsCountry(t *testing.T) {
	q, err := NewLocationQuery("  Miami ", "")
	require.NoError(t, err)
	assert.Equal(t, LocationQuery{City: "Miami", CountryCode: "US"}, q)
	assert.Equal(t, "Miami,US", q.String())
}

func TestNewLocationQuery_NormalizesCountry(t *testing.T) {
	q, err := NewLocationQuery("London", "gb")
	require.NoError(t, err)
	assert.Equal(t, "GB", q.CountryCode)
}

func TestNewLocationQuery_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		country string
	}{
		{"empty city", "", "US"},
		{"blank city", "   ", "US"},
		{"three letter country", "Paris", "FRA"},
		{"digits", "Paris", "F1"},
		{"one letter", "Paris", "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocationQuery(tt.city, tt.country)
			require.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestNewInvalidQueryError_WrapsValidationFailure(t *testing.T) {
	_, qerr := NewLocationQuery("", "")
	require.Error(t, qerr)

	err := NewInvalidQueryError(qerr)

	assert.True(t, IsToolError(err, ToolErrorNotFound))
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, OutcomeRefer, Decide(RiskReport{}, err).Outcome)
}
