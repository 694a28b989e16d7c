package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easypeasy_backend/internals/features/labs/labs/service"
	"easypeasy_backend/internals/helpers/dbtime"
)

func date(y int, m time.Month, d int) dbtime.Date { return dbtime.MustDate(y, m, d) }

func dates(slots []service.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Date.String())
	}
	return out
}

func sixWeekly(t *testing.T) []service.Slot {
	t.Helper()
	s, err := service.GenerateSchedule(date(2024, time.January, 1), 6)
	require.NoError(t, err)
	return s.Meetings
}

func TestGenerateScheduleWeeklySpacing(t *testing.T) {
	for _, n := range []int{1, 2, 6, 10, 52} {
		s, err := service.GenerateSchedule(date(2024, time.February, 26), n)
		require.NoError(t, err)
		require.Len(t, s.Meetings, n)

		for i, m := range s.Meetings {
			assert.Equal(t, i+1, m.Order)
			if i > 0 {
				assert.Equal(t, 7, m.Date.DaysSince(s.Meetings[i-1].Date))
			}
		}
		require.NotNil(t, s.EndDate)
		assert.Equal(t, s.Meetings[n-1].Date, *s.EndDate)
	}
}

func TestGenerateScheduleDates(t *testing.T) {
	s, err := service.GenerateSchedule(date(2024, time.January, 1), 6)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29", "2024-02-05"},
		dates(s.Meetings))
	assert.Equal(t, "2024-02-05", s.EndDate.String())
}

func TestGenerateScheduleZeroCount(t *testing.T) {
	s, err := service.GenerateSchedule(date(2024, time.May, 3), 0)
	require.NoError(t, err)
	assert.Empty(t, s.Meetings)
	assert.Nil(t, s.EndDate)
}

func TestGenerateScheduleDeterministic(t *testing.T) {
	a, err := service.GenerateSchedule(date(2024, time.October, 20), 8)
	require.NoError(t, err)
	b, err := service.GenerateSchedule(date(2024, time.October, 20), 8)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateScheduleIgnoresHostZone(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	var want []string
	for _, name := range []string{"UTC", "America/New_York", "Europe/Rome", "Pacific/Auckland"} {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Skipf("zoneinfo not available: %v", err)
		}
		time.Local = loc

		// spans the European and American DST switches
		s, err := service.GenerateSchedule(date(2024, time.March, 4), 6)
		require.NoError(t, err)
		if want == nil {
			want = dates(s.Meetings)
			continue
		}
		assert.Equal(t, want, dates(s.Meetings), name)
	}
}

func TestGenerateScheduleInvalidInput(t *testing.T) {
	_, err := service.GenerateSchedule(date(2024, time.January, 1), -1)
	assert.ErrorIs(t, err, service.ErrInvalidScheduleInput)

	_, err = service.GenerateSchedule(dbtime.Date{}, 3)
	assert.ErrorIs(t, err, service.ErrInvalidScheduleInput)

	_, err = service.GenerateSchedule(dbtime.Date{Year: 2024, Month: time.February, Day: 31}, 3)
	assert.ErrorIs(t, err, service.ErrInvalidScheduleInput)
}

func TestRescheduleCascadeForward(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 3, date(2024, time.January, 17))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"2024-01-01", "2024-01-08", "2024-01-17", "2024-01-24", "2024-01-31", "2024-02-07"},
		dates(out))
	for i, m := range out {
		assert.Equal(t, i+1, m.Order)
	}
	// input untouched
	assert.Equal(t, "2024-01-15", in[2].Date.String())
}

func TestRescheduleCascadeBackward(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 3, date(2024, time.January, 10))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"2024-01-01", "2024-01-08", "2024-01-10", "2024-01-17", "2024-01-24", "2024-01-31"},
		dates(out))
}

func TestRescheduleCascadeFarFuture(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 3, date(2400, time.January, 17))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"2024-01-01", "2024-01-08", "2400-01-17", "2400-01-24", "2400-01-31", "2400-02-07"},
		dates(out))

	back, err := service.RescheduleCascade(out, 3, date(2024, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, dates(in), dates(back))
}

func TestRescheduleCascadeFirstAndLast(t *testing.T) {
	in := sixWeekly(t)

	out, err := service.RescheduleCascade(in, 1, date(2024, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"2024-01-02", "2024-01-09", "2024-01-16", "2024-01-23", "2024-01-30", "2024-02-06"},
		dates(out))

	out, err = service.RescheduleCascade(in, 6, date(2024, time.February, 12))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-29", out[4].Date.String())
	assert.Equal(t, "2024-02-12", service.EndDateOf(out).String())
}

func TestRescheduleCascadeAllowsNonMonotonic(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 3, date(2024, time.January, 3))
	require.NoError(t, err)
	// order 3 now lands before order 2; accepted as-is
	assert.True(t, out[2].Date.Before(out[1].Date))
	assert.Equal(t, "2024-01-10", out[3].Date.String())
}

func TestRescheduleCascadeNotFound(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 9, date(2024, time.January, 17))
	assert.ErrorIs(t, err, service.ErrMeetingNotFound)
	assert.Equal(t, in, out)
}

func TestRescheduleCascadeInvalidDate(t *testing.T) {
	in := sixWeekly(t)
	out, err := service.RescheduleCascade(in, 2, dbtime.Date{})
	assert.ErrorIs(t, err, service.ErrInvalidScheduleInput)
	assert.Equal(t, in, out)
}

func TestGenerateLabCode(t *testing.T) {
	tod, err := dbtime.Parse("16:30")
	require.NoError(t, err)

	assert.Equal(t, "MILA-LUN-1630", service.GenerateLabCode("Milano Centro", date(2024, time.January, 1), tod))
	assert.Equal(t, "LAB-DOM-1630", service.GenerateLabCode("", date(2024, time.January, 7), tod))
	assert.Equal(t, "CAFE-MER", service.GenerateLabCode("Café", date(2024, time.January, 3), dbtime.Tod{}))
}
