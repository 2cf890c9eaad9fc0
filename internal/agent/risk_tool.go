// Package agent exposes the Risk Tool to conversational agent runtimes as an
// eino tool with a JSON payload contract.
package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/couchcryptid/storm-underwriter/internal/domain"
)

// RiskToolName is the name agents call the Risk Tool by.
const RiskToolName = "get_current_weather_risk"

const riskToolDesc = "Gets current weather data for a city to assess immediate geographical risk."

// Error envelope statuses returned in place of a report.
const (
	StatusConfigError = "ERROR"
	StatusNotFound    = "City Not Found"
	StatusAPIError    = "API Error"
	StatusInvalid     = "Invalid Query"
)

// RiskToolInput is the argument object an agent sends.
type RiskToolInput struct {
	CityName    string `json:"city_name" jsonschema:"required,description=The name of the city (e.g. 'Miami')"`
	CountryCode string `json:"country_code,omitempty" jsonschema:"description=The two-letter country code (e.g. 'US' or 'GB'). Defaults to US"`
}

// RiskToolOutput is either a serialized RiskReport or an error envelope with
// Status and Message set. The two never appear together. Measurements the
// provider omitted are left out of the payload.
type RiskToolOutput struct {
	City               string   `json:"city,omitempty"`
	TemperatureF       *float64 `json:"temperature_f,omitempty"`
	HumidityPercent    *float64 `json:"humidity_percent,omitempty"`
	WindSpeedMph       *float64 `json:"wind_speed_mph,omitempty"`
	WeatherDescription string   `json:"weather_description,omitempty"`
	RiskNote           string   `json:"risk_note,omitempty"`

	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

func reportOutput(r domain.RiskReport) *RiskToolOutput {
	return &RiskToolOutput{
		City:               r.City,
		TemperatureF:       r.TemperatureF,
		HumidityPercent:    r.HumidityPercent,
		WindSpeedMph:       r.WindSpeedMph,
		WeatherDescription: r.WeatherDescription,
		RiskNote:           r.RiskNote,
	}
}

type riskToolImpl struct {
	assessor domain.RiskAssessor
}

// NewRiskTool wraps a RiskAssessor as an invokable tool. Tool failures are
// returned inside the payload so the calling agent can react to them; the
// returned Go error is reserved for argument decoding problems.
func NewRiskTool(assessor domain.RiskAssessor) (tool.InvokableTool, error) {
	impl := &riskToolImpl{assessor: assessor}
	return utils.InferTool(RiskToolName, riskToolDesc, impl.execute)
}

func (r *riskToolImpl) execute(ctx context.Context, input *RiskToolInput) (*RiskToolOutput, error) {
	query, err := domain.NewLocationQuery(input.CityName, input.CountryCode)
	if err != nil {
		return &RiskToolOutput{Status: StatusInvalid, Message: err.Error()}, nil
	}

	report, err := r.assessor.AssessWeatherRisk(ctx, query)
	if err != nil {
		return errorOutput(err), nil
	}
	return reportOutput(report), nil
}

func errorOutput(err error) *RiskToolOutput {
	te := domain.AsToolError(err)
	switch te.Kind {
	case domain.ToolErrorConfiguration:
		return &RiskToolOutput{Status: StatusConfigError, Message: te.Message}
	case domain.ToolErrorNotFound:
		return &RiskToolOutput{Status: StatusNotFound, Message: te.Message}
	case domain.ToolErrorTransport:
		return &RiskToolOutput{Status: StatusAPIError, Message: te.Message}
	default:
		return &RiskToolOutput{Status: StatusAPIError, Message: fmt.Sprintf("unexpected tool error: %s", te.Message)}
	}
}
