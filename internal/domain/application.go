package domain

import (
	"errors"
	"fmt"
	"time"
)

// State is an application's position in the underwriting flow.
type State string

const (
	StatePending        State = "PENDING"
	StateReportReceived State = "REPORT_RECEIVED"
	StateToolFailed     State = "TOOL_FAILED"
	StateDecided        State = "DECIDED"
)

// ErrInvalidTransition is wrapped when a state change is not allowed.
var ErrInvalidTransition = errors.New("invalid application state transition")

// Application tracks one underwriting request from query to decision.
type Application struct {
	ID        string        `json:"id"`
	Query     LocationQuery `json:"query"`
	State     State         `json:"state"`
	Report    *RiskReport   `json:"report,omitempty"`
	ToolError *ToolError    `json:"tool_error,omitempty"`
	Decision  *Decision     `json:"decision,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	DecidedAt time.Time     `json:"decided_at,omitzero"`
}

// NewApplication creates a PENDING application for the query.
func NewApplication(id string, query LocationQuery) *Application {
	return &Application{
		ID:        id,
		Query:     query,
		State:     StatePending,
		CreatedAt: clock.Now().UTC(),
	}
}

// RecordAssessment stores the Risk Tool's outcome. Exactly one of report or
// err is kept: a non-nil err moves the application to TOOL_FAILED, otherwise
// it moves to REPORT_RECEIVED.
func (a *Application) RecordAssessment(report RiskReport, err error) error {
	if a.State != StatePending {
		return fmt.Errorf("%w: record assessment in state %s", ErrInvalidTransition, a.State)
	}
	if err != nil {
		a.ToolError = AsToolError(err)
		a.State = StateToolFailed
		return nil
	}
	a.Report = &report
	a.State = StateReportReceived
	return nil
}

// Decide applies the decision policy and moves the application to DECIDED.
// It can succeed only once.
func (a *Application) Decide() (Decision, error) {
	var d Decision
	switch a.State {
	case StateReportReceived:
		d = Decide(*a.Report, nil)
	case StateToolFailed:
		d = Decide(RiskReport{}, a.ToolError)
	default:
		return Decision{}, fmt.Errorf("%w: decide in state %s", ErrInvalidTransition, a.State)
	}
	a.Decision = &d
	a.DecidedAt = clock.Now().UTC()
	a.State = StateDecided
	return d, nil
}
