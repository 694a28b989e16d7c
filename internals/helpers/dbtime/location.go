// file: internals/helpers/dbtime/location.go
package dbtime

import (
	"strings"
	"time"
)

const DefaultBusinessTimezone = "Europe/Rome"

// LoadBusinessLocation resolves the configured zone name.
// Falls back to Europe/Rome, then UTC.
func LoadBusinessLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultBusinessTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Today is the calendar day at `now` as seen by the business.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}
