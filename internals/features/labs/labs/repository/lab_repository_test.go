package repository_test

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
	"easypeasy_backend/internals/helpers/dbtime"
)

func newLab(start dbtime.Date, n int) *model.LabModel {
	lab := &model.LabModel{
		LabCode:      "TEST-LUN-1630",
		LabVenueID:   uuid.New(),
		LabTypeID:    uuid.New(),
		LabStatus:    model.LabStatusPlanned,
		LabStartDate: start,
	}
	for i := 0; i < n; i++ {
		lab.LabMeetings = append(lab.LabMeetings, model.LabMeetingModel{
			LabMeetingOrder: i + 1,
			LabMeetingDate:  start.AddDays(7 * i),
		})
	}
	if n > 0 {
		lab.LabEndDate = lab.LabMeetings[n-1].LabMeetingDate
	}
	return lab
}

func TestCreateAndGetLab(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	lab := newLab(dbtime.MustDate(2024, time.January, 1), 4)
	require.NoError(t, repo.CreateLab(ctx, lab))
	require.NotEqual(t, uuid.Nil, lab.LabID)

	got, err := repo.GetLab(ctx, lab.LabID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LabVersion)
	require.Len(t, got.LabMeetings, 4)
	for i, m := range got.LabMeetings {
		assert.Equal(t, i+1, m.LabMeetingOrder)
		assert.Equal(t, model.MeetingStatusScheduled, m.LabMeetingStatus)
	}
	assert.Equal(t, "2024-01-22", got.LabEndDate.String())
	assert.Equal(t, "2024-01-01", got.LabStartDate.String())
}

func TestGetLabNotFound(t *testing.T) {
	repo := repository.New(dbtest.Open(t))
	_, err := repo.GetLab(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrLabNotFound)
}

func TestSaveLabReplacesMeetings(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	lab := newLab(dbtime.MustDate(2024, time.January, 1), 6)
	require.NoError(t, repo.CreateLab(ctx, lab))

	repl := newLab(dbtime.MustDate(2024, time.March, 4), 3)
	repl.LabID = lab.LabID
	repl.LabCode = lab.LabCode
	require.NoError(t, repo.SaveLab(ctx, repl, nil))

	got, err := repo.GetLab(ctx, lab.LabID)
	require.NoError(t, err)
	require.Len(t, got.LabMeetings, 3)
	assert.Equal(t, "2024-03-18", got.LabEndDate.String())
	assert.Equal(t, 2, got.LabVersion)
}

func TestSaveLabVersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	lab := newLab(dbtime.MustDate(2024, time.January, 1), 2)
	require.NoError(t, repo.CreateLab(ctx, lab))

	stale := 1
	require.NoError(t, repo.SaveLab(ctx, lab, &stale))

	err := repo.SaveLab(ctx, lab, &stale)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)

	current := 2
	require.NoError(t, repo.SaveLab(ctx, lab, &current))
}

func TestSaveLabZeroMeetingsClearsEndDate(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	lab := newLab(dbtime.MustDate(2024, time.January, 1), 2)
	require.NoError(t, repo.CreateLab(ctx, lab))

	lab.LabMeetings = nil
	require.NoError(t, repo.SaveLab(ctx, lab, nil))

	got, err := repo.GetLab(ctx, lab.LabID)
	require.NoError(t, err)
	assert.Empty(t, got.LabMeetings)
	assert.True(t, got.LabEndDate.IsZero())
}

func TestUpdateMeetingAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	lab := newLab(dbtime.MustDate(2024, time.January, 1), 3)
	require.NoError(t, repo.CreateLab(ctx, lab))

	m, err := repo.UpdateMeeting(ctx, lab.LabID, 2, map[string]any{
		"lab_meeting_status":         model.MeetingStatusDone,
		"lab_meeting_attended_count": 11,
	})
	require.NoError(t, err)
	assert.Equal(t, model.MeetingStatusDone, m.LabMeetingStatus)
	assert.Equal(t, 11, m.LabMeetingAttendedCount)
	assert.Equal(t, "2024-01-08", m.LabMeetingDate.String())

	require.NoError(t, repo.DeleteLab(ctx, lab.LabID))
	_, err = repo.GetLab(ctx, lab.LabID)
	assert.ErrorIs(t, err, repository.ErrLabNotFound)
	assert.ErrorIs(t, repo.DeleteLab(ctx, lab.LabID), repository.ErrLabNotFound)
}

func TestListLabsFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	a := newLab(dbtime.MustDate(2024, time.January, 1), 1)
	a.LabCode = "MILA-LUN-1630"
	b := newLab(dbtime.MustDate(2024, time.February, 1), 1)
	b.LabCode = "ROMA-GIO-1000"
	b.LabStatus = model.LabStatusActive
	require.NoError(t, repo.CreateLab(ctx, a))
	require.NoError(t, repo.CreateLab(ctx, b))

	rows, total, err := repo.ListLabs(ctx, repository.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "ROMA-GIO-1000", rows[0].LabCode)

	active := model.LabStatusActive
	rows, total, err = repo.ListLabs(ctx, repository.ListFilter{Status: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, b.LabID, rows[0].LabID)

	rows, _, err = repo.ListLabs(ctx, repository.ListFilter{Q: "mila"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.LabID, rows[0].LabID)

	rows, total, err = repo.ListLabs(ctx, repository.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "MILA-LUN-1630", rows[0].LabCode)
}

func TestStatusSweep(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(dbtest.Open(t))

	planned := newLab(dbtime.MustDate(2024, time.January, 1), 2) // ends 2024-01-08
	future := newLab(dbtime.MustDate(2024, time.June, 1), 2)
	ended := newLab(dbtime.MustDate(2023, time.September, 4), 2)
	ended.LabStatus = model.LabStatusActive
	for _, l := range []*model.LabModel{planned, future, ended} {
		require.NoError(t, repo.CreateLab(ctx, l))
	}

	today := dbtime.MustDate(2024, time.January, 5)
	n, err := repo.ActivateStarted(ctx, today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.CompleteEnded(ctx, today)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetLab(ctx, planned.LabID)
	require.NoError(t, err)
	assert.Equal(t, model.LabStatusActive, got.LabStatus)

	got, err = repo.GetLab(ctx, future.LabID)
	require.NoError(t, err)
	assert.Equal(t, model.LabStatusPlanned, got.LabStatus)

	got, err = repo.GetLab(ctx, ended.LabID)
	require.NoError(t, err)
	assert.Equal(t, model.LabStatusCompleted, got.LabStatus)
	assert.Equal(t, 2, got.LabVersion)
}
