// file: internals/features/labs/labs/service/lab_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"easypeasy_backend/internals/features/labs/labs/model"
	"easypeasy_backend/internals/features/labs/labs/repository"
	"easypeasy_backend/internals/features/labs/lookup"
	"easypeasy_backend/internals/helpers/dbtime"
)

// LabStore is the persistence side the service needs.
type LabStore interface {
	CreateLab(ctx context.Context, lab *model.LabModel) error
	GetLab(ctx context.Context, id uuid.UUID) (*model.LabModel, error)
	ListLabs(ctx context.Context, f repository.ListFilter) ([]model.LabModel, int64, error)
	SaveLab(ctx context.Context, lab *model.LabModel, expectedVersion *int) error
	UpdateMeeting(ctx context.Context, labID uuid.UUID, order int, fields map[string]any) (*model.LabMeetingModel, error)
	DeleteLab(ctx context.Context, id uuid.UUID) error
}

// Resolver answers venue / lab type questions for the scheduling core.
type Resolver interface {
	Lookup(ctx context.Context, venueID, labTypeID uuid.UUID) (lookup.Result, error)
	LabType(ctx context.Context, id uuid.UUID) (lookup.LabTypeInfo, error)
}

type LabService struct {
	Store    LabStore
	Resolver Resolver
}

func NewLabService(store LabStore, resolver Resolver) *LabService {
	return &LabService{Store: store, Resolver: resolver}
}

type CreateLabInput struct {
	VenueID   uuid.UUID
	LabTypeID uuid.UUID
	StartDate dbtime.Date
	StartTime dbtime.Tod
	Status    *model.LabStatus
	Code      *string
	Notes     *string
}

type UpdateLabInput struct {
	VenueID   *uuid.UUID
	LabTypeID *uuid.UUID
	StartDate *dbtime.Date
	StartTime *dbtime.Tod
	Status    *model.LabStatus
	Code      *string
	Notes     *string
	Version   *int
}

type UpdateMeetingInput struct {
	Status        *model.MeetingStatus
	AttendedCount *int
	EnrolledCount *int
}

/* =========================
   Create / regenerate
========================= */

func (s *LabService) CreateLab(ctx context.Context, in CreateLabInput) (*model.LabModel, error) {
	ref, err := s.Resolver.Lookup(ctx, in.VenueID, in.LabTypeID)
	if err != nil {
		return nil, err
	}
	sched, err := GenerateSchedule(in.StartDate, ref.LabType.MeetingCount)
	if err != nil {
		return nil, err
	}

	lab := &model.LabModel{
		LabVenueID:   in.VenueID,
		LabTypeID:    in.LabTypeID,
		LabStatus:    model.LabStatusPlanned,
		LabStartDate: in.StartDate,
		LabStartTime: in.StartTime,
		LabNotes:     in.Notes,
		LabMeetings:  meetingsFromSlots(sched.Meetings),
	}
	if in.Status != nil {
		lab.LabStatus = *in.Status
	}
	lab.LabCode = pickCode(in.Code, ref.Venue, in.StartDate, in.StartTime)

	if err := s.Store.CreateLab(ctx, lab); err != nil {
		return nil, err
	}
	log.Printf("[Lab.Create] lab=%s code=%s meetings=%d end=%s", lab.LabID, lab.LabCode, len(lab.LabMeetings), lab.LabEndDate)
	return lab, nil
}

func (s *LabService) UpdateLab(ctx context.Context, id uuid.UUID, in UpdateLabInput) (*model.LabModel, error) {
	lab, err := s.Store.GetLab(ctx, id)
	if err != nil {
		return nil, err
	}

	regenerate := false
	recode := false
	if in.VenueID != nil && *in.VenueID != lab.LabVenueID {
		lab.LabVenueID = *in.VenueID
		recode = true
	}
	if in.LabTypeID != nil && *in.LabTypeID != lab.LabTypeID {
		lab.LabTypeID = *in.LabTypeID
		regenerate = true
	}
	if in.StartDate != nil && *in.StartDate != lab.LabStartDate {
		lab.LabStartDate = *in.StartDate
		regenerate, recode = true, true
	}
	if in.StartTime != nil && in.StartTime.HHMM() != lab.LabStartTime.HHMM() {
		lab.LabStartTime = *in.StartTime
		recode = true
	}
	if in.Status != nil {
		lab.LabStatus = *in.Status
	}
	if in.Notes != nil {
		lab.LabNotes = in.Notes
	}

	// an empty code asks for a freshly derived one
	if in.Code != nil && strings.TrimSpace(*in.Code) == "" {
		recode = true
	}

	var ref lookup.Result
	if regenerate || recode {
		if ref, err = s.Resolver.Lookup(ctx, lab.LabVenueID, lab.LabTypeID); err != nil {
			return nil, err
		}
	}
	if regenerate {
		sched, err := GenerateSchedule(lab.LabStartDate, ref.LabType.MeetingCount)
		if err != nil {
			return nil, err
		}
		lab.LabMeetings = meetingsFromSlots(sched.Meetings)
	}
	if in.Code != nil || recode {
		lab.LabCode = pickCode(in.Code, ref.Venue, lab.LabStartDate, lab.LabStartTime)
	}

	if err := s.Store.SaveLab(ctx, lab, in.Version); err != nil {
		return nil, err
	}
	log.Printf("[Lab.Update] lab=%s regenerated=%v version=%d", lab.LabID, regenerate, lab.LabVersion)
	return lab, nil
}

/* =========================
   Meetings
========================= */

// RescheduleMeeting applies a drag-and-drop move and persists the whole
// meeting set in one write.
func (s *LabService) RescheduleMeeting(ctx context.Context, labID uuid.UUID, movedOrder int, newDate dbtime.Date, version *int) (*model.LabModel, error) {
	lab, err := s.Store.GetLab(ctx, labID)
	if err != nil {
		return nil, err
	}

	moved, err := RescheduleCascade(slotsFromMeetings(lab.LabMeetings), movedOrder, newDate)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int]dbtime.Date, len(moved))
	for _, sl := range moved {
		byOrder[sl.Order] = sl.Date
	}
	for i := range lab.LabMeetings {
		lab.LabMeetings[i].LabMeetingDate = byOrder[lab.LabMeetings[i].LabMeetingOrder]
	}

	if err := s.Store.SaveLab(ctx, lab, version); err != nil {
		return nil, err
	}
	log.Printf("[Lab.Reschedule] lab=%s order=%d new_date=%s end=%s", lab.LabID, movedOrder, newDate, lab.LabEndDate)
	return lab, nil
}

func (s *LabService) UpdateMeeting(ctx context.Context, labID uuid.UUID, order int, in UpdateMeetingInput) (*model.LabMeetingModel, error) {
	fields := map[string]any{}
	if in.Status != nil {
		fields["lab_meeting_status"] = *in.Status
	}
	if in.AttendedCount != nil {
		fields["lab_meeting_attended_count"] = *in.AttendedCount
	}
	if in.EnrolledCount != nil {
		fields["lab_meeting_enrolled_count"] = *in.EnrolledCount
	}

	m, err := s.Store.UpdateMeeting(ctx, labID, order, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lab %s order %d", ErrMeetingNotFound, labID, order)
		}
		return nil, err
	}
	return m, nil
}

/* =========================
   Read / delete / preview
========================= */

func (s *LabService) GetLab(ctx context.Context, id uuid.UUID) (*model.LabModel, error) {
	return s.Store.GetLab(ctx, id)
}

func (s *LabService) ListLabs(ctx context.Context, f repository.ListFilter) ([]model.LabModel, int64, error) {
	return s.Store.ListLabs(ctx, f)
}

func (s *LabService) DeleteLab(ctx context.Context, id uuid.UUID) error {
	return s.Store.DeleteLab(ctx, id)
}

// PreviewSchedule generates without saving; meetingCount wins over labTypeID.
func (s *LabService) PreviewSchedule(ctx context.Context, start dbtime.Date, meetingCount *int, labTypeID *uuid.UUID) (Schedule, error) {
	n := 0
	switch {
	case meetingCount != nil:
		n = *meetingCount
	case labTypeID != nil:
		lt, err := s.Resolver.LabType(ctx, *labTypeID)
		if err != nil {
			return Schedule{}, err
		}
		n = lt.MeetingCount
	default:
		return Schedule{}, fmt.Errorf("%w: meeting_count or lab_type_id required", ErrInvalidScheduleInput)
	}
	return GenerateSchedule(start, n)
}

/* =========================
   Mapping
========================= */

func meetingsFromSlots(slots []Slot) []model.LabMeetingModel {
	out := make([]model.LabMeetingModel, 0, len(slots))
	for _, sl := range slots {
		out = append(out, model.LabMeetingModel{
			LabMeetingOrder:  sl.Order,
			LabMeetingDate:   sl.Date,
			LabMeetingStatus: model.MeetingStatusScheduled,
		})
	}
	return out
}

func slotsFromMeetings(ms []model.LabMeetingModel) []Slot {
	out := make([]Slot, 0, len(ms))
	for _, m := range ms {
		out = append(out, Slot{Order: m.LabMeetingOrder, Date: m.LabMeetingDate})
	}
	return out
}

func pickCode(explicit *string, venue lookup.VenueInfo, start dbtime.Date, startTime dbtime.Tod) string {
	if explicit != nil {
		if c := strings.ToUpper(strings.TrimSpace(*explicit)); c != "" {
			return c
		}
	}
	frag := venue.Code
	if frag == "" {
		frag = venue.Name
	}
	return GenerateLabCode(frag, start, startTime)
}
