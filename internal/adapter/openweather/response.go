package openweather

import (
	"encoding/json"
	"strconv"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
)

// OpenWeatherMap API response types.

type response struct {
	Cod     statusCode  `json:"cod"`
	Message string      `json:"message"`
	Main    *mainInfo   `json:"main"`
	Weather []condition `json:"weather"`
	Wind    *windInfo   `json:"wind"`
}

type mainInfo struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type condition struct {
	Description string `json:"description"`
}

type windInfo struct {
	Speed *float64 `json:"speed"` // mph with units=imperial
}

// statusCode decodes "cod", which the provider sends as a number on success
// and as a string on errors ("404").
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*s = statusCode(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		// Unparseable codes are never 200.
		*s = 0
		return nil
	}
	*s = statusCode(n)
	return nil
}

func (r response) toReport(city string) domain.RiskReport {
	report := domain.RiskReport{
		City:               city,
		WeatherDescription: defaultDescription,
		RiskNote:           domain.RiskNote,
	}
	if r.Main != nil {
		report.TemperatureF = r.Main.Temp
		report.HumidityPercent = r.Main.Humidity
	}
	if r.Wind != nil {
		report.WindSpeedMph = r.Wind.Speed
	}
	if len(r.Weather) > 0 && r.Weather[0].Description != "" {
		report.WeatherDescription = r.Weather[0].Description
	}
	return report
}
