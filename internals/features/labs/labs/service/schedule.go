// file: internals/features/labs/labs/service/schedule.go
package service

import (
	"errors"
	"fmt"

	"easypeasy_backend/internals/helpers/dbtime"
)

var (
	ErrInvalidScheduleInput = errors.New("invalid schedule input")
	ErrMeetingNotFound      = errors.New("meeting not found")
)

const daysPerWeek = 7

// Slot is one meeting position inside a lab's series.
type Slot struct {
	Order int         `json:"order"`
	Date  dbtime.Date `json:"date"`
}

type Schedule struct {
	Meetings []Slot       `json:"meetings"`
	EndDate  *dbtime.Date `json:"end_date"`
}

/* =========================
   Slot generator
========================= */

// GenerateSchedule lays out meetingCount weekly meetings starting on startDate.
// No holidays or blackout weeks are skipped.
func GenerateSchedule(startDate dbtime.Date, meetingCount int) (Schedule, error) {
	if !startDate.Valid() {
		return Schedule{}, fmt.Errorf("%w: start date %q", ErrInvalidScheduleInput, startDate.String())
	}
	if meetingCount < 0 {
		return Schedule{}, fmt.Errorf("%w: meeting count %d", ErrInvalidScheduleInput, meetingCount)
	}

	out := Schedule{Meetings: make([]Slot, 0, meetingCount)}
	for i := 0; i < meetingCount; i++ {
		out.Meetings = append(out.Meetings, Slot{
			Order: i + 1,
			Date:  startDate.AddDays(i * daysPerWeek),
		})
	}
	out.EndDate = EndDateOf(out.Meetings)
	return out, nil
}

// EndDateOf is the date of the highest-order slot, nil when empty.
func EndDateOf(slots []Slot) *dbtime.Date {
	if len(slots) == 0 {
		return nil
	}
	last := slots[0]
	for _, s := range slots[1:] {
		if s.Order > last.Order {
			last = s
		}
	}
	d := last.Date
	return &d
}

/* =========================
   Cascading rescheduler
========================= */

// RescheduleCascade moves meeting movedOrder to newDate and translates every
// later meeting by the same signed day offset. Earlier meetings keep their
// dates. The input is never mutated; on error it is returned as-is.
func RescheduleCascade(meetings []Slot, movedOrder int, newDate dbtime.Date) ([]Slot, error) {
	if !newDate.Valid() {
		return meetings, fmt.Errorf("%w: new date %q", ErrInvalidScheduleInput, newDate.String())
	}

	idx := -1
	for i, m := range meetings {
		if m.Order == movedOrder {
			idx = i
			break
		}
	}
	if idx < 0 {
		return meetings, fmt.Errorf("%w: order %d", ErrMeetingNotFound, movedOrder)
	}

	delta := newDate.DaysSince(meetings[idx].Date)

	out := make([]Slot, len(meetings))
	copy(out, meetings)
	for i := range out {
		switch {
		case out[i].Order == movedOrder:
			out[i].Date = newDate
		case out[i].Order > movedOrder:
			out[i].Date = out[i].Date.AddDays(delta)
		}
	}
	return out, nil
}
