package agent

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
)

// DecideFromPayload applies the decision policy to a serialized Risk Tool
// payload, as an agent runtime would after the tool call returns. An error
// envelope decodes to the matching ToolError and therefore yields REFER.
func DecideFromPayload(payload string) (domain.Decision, error) {
	report, toolErr, err := ParsePayload(payload)
	if err != nil {
		return domain.Decision{}, err
	}
	if toolErr != nil {
		return domain.Decide(domain.RiskReport{}, toolErr), nil
	}
	return domain.Decide(report, nil), nil
}

// ParsePayload decodes a Risk Tool payload into either a report or a
// *domain.ToolError. The third return value reports malformed JSON.
func ParsePayload(payload string) (domain.RiskReport, *domain.ToolError, error) {
	var out struct {
		domain.RiskReport

		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return domain.RiskReport{}, nil, fmt.Errorf("decode risk tool payload: %w", err)
	}

	switch out.Status {
	case "":
		return out.RiskReport, nil, nil
	case StatusConfigError:
		return domain.RiskReport{}, &domain.ToolError{Kind: domain.ToolErrorConfiguration, Message: out.Message}, nil
	case StatusNotFound, StatusInvalid:
		return domain.RiskReport{}, &domain.ToolError{Kind: domain.ToolErrorNotFound, Message: out.Message}, nil
	default:
		return domain.RiskReport{}, &domain.ToolError{Kind: domain.ToolErrorTransport, Message: out.Message}, nil
	}
}
