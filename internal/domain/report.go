package domain

import (
	"context"
	"errors"
	"fmt"
)

// RiskNote is the fixed advisory attached to every successful report.
const RiskNote = "Wind or severe precipitation may indicate high immediate property risk."

// RiskReport is the Risk Tool's successful output. Pointer fields are nil
// when the provider did not report the measurement.
type RiskReport struct {
	City               string   `json:"city"`
	TemperatureF       *float64 `json:"temperature_f"`
	HumidityPercent    *float64 `json:"humidity_percent"`
	WindSpeedMph       *float64 `json:"wind_speed_mph"`
	WeatherDescription string   `json:"weather_description"`
	RiskNote           string   `json:"risk_note"`
}

// ToolErrorKind tags the ToolError variant.
type ToolErrorKind string

const (
	ToolErrorConfiguration ToolErrorKind = "configuration"
	ToolErrorNotFound      ToolErrorKind = "not_found"
	ToolErrorTransport     ToolErrorKind = "transport"
)

// ToolError is the Risk Tool's failure output. It is returned as a value so
// the decision layer can inspect it with errors.As.
type ToolError struct {
	Kind    ToolErrorKind `json:"kind"`
	Message string        `json:"message"`
	Err     error         `json:"-"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *ToolError) Unwrap() error { return e.Err }

// NewConfigurationError reports a missing or placeholder credential.
func NewConfigurationError(msg string) *ToolError {
	return &ToolError{Kind: ToolErrorConfiguration, Message: msg}
}

// NewNotFoundError reports a location the provider could not resolve.
func NewNotFoundError(city string) *ToolError {
	return &ToolError{
		Kind:    ToolErrorNotFound,
		Message: fmt.Sprintf("Could not find weather data for %s.", city),
	}
}

// NewInvalidQueryError reports a query that cannot name a location. It is a
// not-found variant and wraps ErrInvalidQuery.
func NewInvalidQueryError(err error) *ToolError {
	return &ToolError{Kind: ToolErrorNotFound, Message: err.Error(), Err: err}
}

// NewTransportError wraps a network or provider failure.
func NewTransportError(err error) *ToolError {
	return &ToolError{
		Kind:    ToolErrorTransport,
		Message: fmt.Sprintf("Failed to connect to weather API: %v", err),
		Err:     err,
	}
}

// AsToolError extracts a *ToolError from err. Errors that are not tool
// errors are reported as transport failures so callers always see a tagged
// variant.
func AsToolError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return NewTransportError(err)
}

// IsToolError reports whether err is a ToolError of the given kind.
func IsToolError(err error, kind ToolErrorKind) bool {
	var te *ToolError
	return errors.As(err, &te) && te.Kind == kind
}

// RiskAssessor is the Risk Tool contract. Implementations perform at most one
// outbound request per call and return either a report or a *ToolError.
type RiskAssessor interface {
	AssessWeatherRisk(ctx context.Context, query LocationQuery) (RiskReport, error)
}
