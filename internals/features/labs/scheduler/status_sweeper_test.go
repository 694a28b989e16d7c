package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easypeasy_backend/internals/databases/dbtest"
	"easypeasy_backend/internals/features/labs/labs/model"
	"easypeasy_backend/internals/features/labs/labs/repository"
	"easypeasy_backend/internals/features/labs/scheduler"
	"easypeasy_backend/internals/helpers/dbtime"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}
	return loc
}

func weeklyLab(start dbtime.Date, n int, status model.LabStatus) *model.LabModel {
	lab := &model.LabModel{
		LabCode:      "TEST",
		LabVenueID:   uuid.New(),
		LabTypeID:    uuid.New(),
		LabStatus:    status,
		LabStartDate: start,
	}
	for i := 0; i < n; i++ {
		lab.LabMeetings = append(lab.LabMeetings, model.LabMeetingModel{
			LabMeetingOrder: i + 1,
			LabMeetingDate:  start.AddDays(7 * i),
		})
	}
	return lab
}

func TestSweepMovesLabsByBusinessDay(t *testing.T) {
	ctx := context.Background()
	loc := rome(t)
	repo := repository.New(dbtest.Open(t))

	started := weeklyLab(dbtime.MustDate(2024, time.March, 4), 4, model.LabStatusPlanned)
	future := weeklyLab(dbtime.MustDate(2024, time.March, 11), 4, model.LabStatusPlanned)
	ended := weeklyLab(dbtime.MustDate(2024, time.January, 1), 2, model.LabStatusActive)
	endsToday := weeklyLab(dbtime.MustDate(2024, time.March, 3), 2, model.LabStatusActive)
	for _, l := range []*model.LabModel{started, future, ended, endsToday} {
		require.NoError(t, repo.CreateLab(ctx, l))
	}

	// 23:30 UTC on March 9 is already March 10 in Rome
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)
	sw := scheduler.NewStatusSweeper(repo, loc, "02:00", scheduler.WithClock(func() time.Time { return now }))
	assert.Equal(t, "2024-03-10", sw.Today().String())

	activated, completed, err := sw.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, activated)
	assert.EqualValues(t, 1, completed)

	status := func(id uuid.UUID) model.LabStatus {
		l, err := repo.GetLab(ctx, id)
		require.NoError(t, err)
		return l.LabStatus
	}
	assert.Equal(t, model.LabStatusActive, status(started.LabID))
	assert.Equal(t, model.LabStatusPlanned, status(future.LabID))
	assert.Equal(t, model.LabStatusCompleted, status(ended.LabID))
	assert.Equal(t, model.LabStatusActive, status(endsToday.LabID))

	// a second sweep on the same day is a no-op
	activated, completed, err = sw.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, activated)
	assert.Zero(t, completed)
}

func TestStartRejectsBadTime(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	sw := scheduler.NewStatusSweeper(repo, time.UTC, "25:99")
	require.Error(t, sw.Start())
	sw.Stop()
}

func TestStartAndStop(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	sw := scheduler.NewStatusSweeper(repo, time.UTC, "03:15")
	require.NoError(t, sw.Start())
	sw.Stop()
}
