package agent

import (
	"context"
	"testing"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideFromPayload_RoundTripsThroughTool(t *testing.T) {
	tests := []struct {
		name     string
		assessor *stubAssessor
		outcome  domain.Outcome
	}{
		{"high wind", &stubAssessor{report: domain.RiskReport{City: "Miami", WindSpeedMph: ptr(25)}}, domain.OutcomeDecline},
		{"clear", &stubAssessor{report: domain.RiskReport{City: "London", WindSpeedMph: ptr(5), WeatherDescription: "clear sky"}}, domain.OutcomeApprove},
		{"snow", &stubAssessor{report: domain.RiskReport{City: "Denver", WeatherDescription: "Light Snow"}}, domain.OutcomeDecline},
		{"not found", &stubAssessor{err: domain.NewNotFoundError("Atlantis")}, domain.OutcomeRefer},
		{"missing key", &stubAssessor{err: domain.NewConfigurationError("WEATHER_API_KEY is not set.")}, domain.OutcomeRefer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := NewRiskTool(tt.assessor)
			require.NoError(t, err)
			payload, err := rt.InvokableRun(context.Background(), `{"city_name":"X"}`)
			require.NoError(t, err)

			d, err := DecideFromPayload(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, d.Outcome)
		})
	}
}

func TestParsePayload_ErrorKinds(t *testing.T) {
	_, te, err := ParsePayload(`{"status":"City Not Found","message":"Could not find weather data for Atlantis."}`)
	require.NoError(t, err)
	require.NotNil(t, te)
	assert.Equal(t, domain.ToolErrorNotFound, te.Kind)

	_, te, err = ParsePayload(`{"status":"API Error","message":"timeout"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.ToolErrorTransport, te.Kind)

	_, te, err = ParsePayload(`{"status":"ERROR","message":"Please update WEATHER_API_KEY with your valid key."}`)
	require.NoError(t, err)
	assert.Equal(t, domain.ToolErrorConfiguration, te.Kind)
}

func TestParsePayload_NullMeasurements(t *testing.T) {
	report, te, err := ParsePayload(`{"city":"Oslo","temperature_f":null,"humidity_percent":null,"wind_speed_mph":null,"weather_description":"mist","risk_note":"n"}`)
	require.NoError(t, err)
	assert.Nil(t, te)
	assert.Nil(t, report.WindSpeedMph)
	assert.Equal(t, "mist", report.WeatherDescription)
}

func TestDecideFromPayload_Envelopes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		outcome domain.Outcome
		kind    domain.ToolErrorKind
		wantErr bool
	}{
		{
			name:    "invalid query refers",
			payload: `{"status":"Invalid Query","message":"invalid location query: city is required"}`,
			outcome: domain.OutcomeRefer,
			kind:    domain.ToolErrorNotFound,
		},
		{
			name:    "unknown status refers as transport",
			payload: `{"status":"Rate Limited","message":"slow down"}`,
			outcome: domain.OutcomeRefer,
			kind:    domain.ToolErrorTransport,
		},
		{name: "truncated object", payload: `{`, wantErr: true},
		{name: "not json", payload: `weather is fine`, wantErr: true},
		{name: "empty payload", payload: ``, wantErr: true},
		{name: "wrong field type", payload: `{"wind_speed_mph":"fast"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DecideFromPayload(tt.payload)
			_, te, parseErr := ParsePayload(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				require.Error(t, parseErr)
				assert.Nil(t, te)
				return
			}
			require.NoError(t, err)
			require.NoError(t, parseErr)
			assert.Equal(t, tt.outcome, d.Outcome)
			require.NotNil(t, te)
			assert.Equal(t, tt.kind, te.Kind)
		})
	}
}

func TestDecideFromPayload_InvalidQueryFromTool(t *testing.T) {
	assessor := &stubAssessor{}
	rt, err := NewRiskTool(assessor)
	require.NoError(t, err)

	payload, err := rt.InvokableRun(context.Background(), `{"city_name":"  "}`)
	require.NoError(t, err)
	assert.Contains(t, payload, `"status":"Invalid Query"`)
	assert.Empty(t, assessor.got)

	d, err := DecideFromPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRefer, d.Outcome)
}
