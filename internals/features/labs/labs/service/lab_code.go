// file: internals/features/labs/labs/service/lab_code.go
package service

import (
	"strings"
	"time"

	helper "easypeasy_backend/internals/helpers"
	"easypeasy_backend/internals/helpers/dbtime"
)

const labCodeVenueLen = 4

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "LUN",
	time.Tuesday:   "MAR",
	time.Wednesday: "MER",
	time.Thursday:  "GIO",
	time.Friday:    "VEN",
	time.Saturday:  "SAB",
	time.Sunday:    "DOM",
}

// GenerateLabCode builds "<VENUE>-<DAY>-<HHMM>", e.g. "MILA-LUN-1630".
func GenerateLabCode(venueCode string, start dbtime.Date, startTime dbtime.Tod) string {
	frag := ""
	if strings.TrimSpace(venueCode) != "" {
		frag = strings.ReplaceAll(helper.Slugify(venueCode, 100), "-", "")
	}
	if frag == "" || frag == "item" {
		frag = "lab"
	}
	if r := []rune(frag); len(r) > labCodeVenueLen {
		frag = string(r[:labCodeVenueLen])
	}

	parts := []string{strings.ToUpper(frag), weekdayCodes[start.Weekday()]}
	if !startTime.IsZero() {
		parts = append(parts, startTime.HHMM())
	}
	return strings.Join(parts, "-")
}
