// Package domain models property underwriting against current weather.
//
// # Flow
//
// An underwriting application carries one [LocationQuery]. The Risk Tool
// (see [RiskAssessor]) turns the query into either a [RiskReport] or a
// [ToolError], never both. The Decision Policy ([Decide]) maps that outcome
// to exactly one [Decision]:
//
//	PENDING -> (tool invoked) -> REPORT_RECEIVED | TOOL_FAILED -> DECIDED
//
// DECIDED is terminal. See [Application] for the guarded transitions.
//
// # Weather Units
//
// Reports are imperial: temperature in Fahrenheit, wind speed in miles per
// hour, humidity in percent. Measurements the provider omits stay nil rather
// than zero so that absence is distinguishable from a calm, 0 mph reading.
//
// # Decision Policy
//
// Rules are applied in order against a RiskReport:
//
//  1. wind speed present and > 20 mph         -> DECLINE
//  2. description contains "heavy rain",
//     "thunderstorm" or "snow" (any case)    -> DECLINE
//  3. otherwise                               -> APPROVE
//
// A missing wind reading skips rule 1; missing fields are never grounds for
// DECLINE on their own. When no report could be obtained at all the outcome
// is REFER, escalating the case to a human underwriter.
package domain
