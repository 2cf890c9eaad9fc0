package domain

import (
	"fmt"
	"strings"
)

// Outcome is the underwriting verdict.
type Outcome string

const (
	OutcomeApprove Outcome = "APPROVE"
	OutcomeDecline Outcome = "DECLINE"
	OutcomeRefer   Outcome = "REFER"
)

// MaxWindSpeedMph is the highest wind speed that can still be approved.
const MaxWindSpeedMph = 20.0

// severeConditions are matched case-insensitively as substrings of the
// weather description, in this order.
var severeConditions = []string{"heavy rain", "thunderstorm", "snow"}

const (
	rationaleWind        = "wind speed exceeds safety threshold."
	rationaleClear       = "no severe weather indicators present."
	rationaleUnavailable = "weather data unavailable; human review is required."
)

// Decision is the terminal artifact of an application.
type Decision struct {
	Outcome   Outcome `json:"outcome"`
	Rationale string  `json:"rationale"`
}

func (d Decision) String() string {
	return fmt.Sprintf("%s: %s", d.Outcome, d.Rationale)
}

// Decide applies the decision policy. A non-nil err means no report could be
// obtained and always yields REFER; report is ignored in that case.
func Decide(report RiskReport, err error) Decision {
	if err != nil {
		return Decision{Outcome: OutcomeRefer, Rationale: referRationale(err)}
	}

	if report.WindSpeedMph != nil && *report.WindSpeedMph > MaxWindSpeedMph {
		return Decision{Outcome: OutcomeDecline, Rationale: rationaleWind}
	}

	if cond, ok := matchSevereCondition(report.WeatherDescription); ok {
		return Decision{
			Outcome:   OutcomeDecline,
			Rationale: fmt.Sprintf("severe weather reported: %s.", cond),
		}
	}

	return Decision{Outcome: OutcomeApprove, Rationale: rationaleClear}
}

func matchSevereCondition(description string) (string, bool) {
	desc := strings.ToLower(description)
	for _, cond := range severeConditions {
		if strings.Contains(desc, cond) {
			return cond, true
		}
	}
	return "", false
}

func referRationale(err error) string {
	te := AsToolError(err)
	return fmt.Sprintf("%s (%s)", rationaleUnavailable, te.Message)
}
