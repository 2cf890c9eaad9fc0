package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCountryCode is applied when a query omits its country.
const DefaultCountryCode = "US"

// ErrInvalidQuery is wrapped by every LocationQuery validation failure.
var ErrInvalidQuery = errors.New("invalid location query")

// LocationQuery identifies the property location to assess.
type LocationQuery struct {
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
}

// NewLocationQuery trims and validates the inputs. An empty country code
// defaults to [DefaultCountryCode]; otherwise it must be two ASCII letters and
// is normalized to upper case.
func NewLocationQuery(city, countryCode string) (LocationQuery, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return LocationQuery{}, fmt.Errorf("%w: city is required", ErrInvalidQuery)
	}

	cc := strings.ToUpper(strings.TrimSpace(countryCode))
	if cc == "" {
		cc = DefaultCountryCode
	}
	if !isCountryCode(cc) {
		return LocationQuery{}, fmt.Errorf("%w: country code %q must be two letters", ErrInvalidQuery, countryCode)
	}

	return LocationQuery{City: city, CountryCode: cc}, nil
}

// String renders the query in the provider's "city,CC" form.
func (q LocationQuery) String() string {
	return q.City + "," + q.CountryCode
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
