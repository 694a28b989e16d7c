// file: internals/features/labs/labs/dto/lab_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"easypeasy_backend/internals/features/labs/labs/model"
	"easypeasy_backend/internals/features/labs/labs/service"
	"easypeasy_backend/internals/helpers/dbtime"
)

/* ========== CREATE ========== */

type CreateLabRequest struct {
	LabVenueID   uuid.UUID   `json:"lab_venue_id" validate:"required"`
	LabTypeID    uuid.UUID   `json:"lab_type_id" validate:"required"`
	LabStartDate dbtime.Date `json:"lab_start_date"`
	LabStartTime *dbtime.Tod `json:"lab_start_time" validate:"omitempty"`
	LabStatus    *string     `json:"lab_status" validate:"omitempty,oneof=planned active paused completed cancelled"`
	LabCode      *string     `json:"lab_code" validate:"omitempty,max=40"`
	LabNotes     *string     `json:"lab_notes" validate:"omitempty,max=2000"`
}

func (r CreateLabRequest) ToInput() service.CreateLabInput {
	in := service.CreateLabInput{
		VenueID:   r.LabVenueID,
		LabTypeID: r.LabTypeID,
		StartDate: r.LabStartDate,
		Code:      r.LabCode,
		Notes:     trimPtr(r.LabNotes),
	}
	if r.LabStartTime != nil {
		in.StartTime = *r.LabStartTime
	}
	if r.LabStatus != nil {
		st := model.LabStatus(*r.LabStatus)
		in.Status = &st
	}
	return in
}

/* ========== PATCH ========== */

type UpdateLabRequest struct {
	LabVenueID   *uuid.UUID   `json:"lab_venue_id" validate:"omitempty"`
	LabTypeID    *uuid.UUID   `json:"lab_type_id" validate:"omitempty"`
	LabStartDate *dbtime.Date `json:"lab_start_date" validate:"omitempty"`
	LabStartTime *dbtime.Tod  `json:"lab_start_time" validate:"omitempty"`
	LabStatus    *string      `json:"lab_status" validate:"omitempty,oneof=planned active paused completed cancelled"`
	LabCode      *string      `json:"lab_code" validate:"omitempty,max=40"`
	LabNotes     *string      `json:"lab_notes" validate:"omitempty,max=2000"`
	LabVersion   *int         `json:"lab_version" validate:"omitempty,min=1"`
}

func (r UpdateLabRequest) ToInput() service.UpdateLabInput {
	in := service.UpdateLabInput{
		VenueID:   r.LabVenueID,
		LabTypeID: r.LabTypeID,
		StartDate: r.LabStartDate,
		StartTime: r.LabStartTime,
		Code:      r.LabCode,
		Notes:     trimPtr(r.LabNotes),
		Version:   r.LabVersion,
	}
	if r.LabStatus != nil {
		st := model.LabStatus(*r.LabStatus)
		in.Status = &st
	}
	return in
}

/* ========== MEETINGS ========== */

type RescheduleMeetingRequest struct {
	NewDate dbtime.Date `json:"new_date"`
	Version *int        `json:"version" validate:"omitempty,min=1"`
}

type UpdateMeetingRequest struct {
	Status        *string `json:"status" validate:"omitempty,oneof=scheduled done cancelled"`
	AttendedCount *int    `json:"attended_count" validate:"omitempty,min=0"`
	EnrolledCount *int    `json:"enrolled_count" validate:"omitempty,min=0"`
}

func (r UpdateMeetingRequest) ToInput() service.UpdateMeetingInput {
	in := service.UpdateMeetingInput{
		AttendedCount: r.AttendedCount,
		EnrolledCount: r.EnrolledCount,
	}
	if r.Status != nil {
		st := model.MeetingStatus(*r.Status)
		in.Status = &st
	}
	return in
}

/* ========== PREVIEW ========== */

type PreviewScheduleRequest struct {
	StartDate    dbtime.Date `json:"start_date"`
	MeetingCount *int        `json:"meeting_count" validate:"omitempty,min=0,max=104"`
	LabTypeID    *uuid.UUID  `json:"lab_type_id" validate:"omitempty"`
}

type SlotResponse struct {
	Order int         `json:"order"`
	Date  dbtime.Date `json:"date"`
}

type ScheduleResponse struct {
	Meetings []SlotResponse `json:"meetings"`
	EndDate  *dbtime.Date   `json:"end_date"`
}

func FromSchedule(s service.Schedule) ScheduleResponse {
	out := ScheduleResponse{Meetings: make([]SlotResponse, 0, len(s.Meetings)), EndDate: s.EndDate}
	for _, sl := range s.Meetings {
		out.Meetings = append(out.Meetings, SlotResponse{Order: sl.Order, Date: sl.Date})
	}
	return out
}

/* ========== RESPONSE ========== */

type LabMeetingResponse struct {
	LabMeetingID            uuid.UUID           `json:"lab_meeting_id"`
	LabMeetingOrder         int                 `json:"lab_meeting_order"`
	LabMeetingDate          dbtime.Date         `json:"lab_meeting_date"`
	LabMeetingStatus        model.MeetingStatus `json:"lab_meeting_status"`
	LabMeetingAttendedCount int                 `json:"lab_meeting_attended_count"`
	LabMeetingEnrolledCount int                 `json:"lab_meeting_enrolled_count"`
}

type LabResponse struct {
	LabID        uuid.UUID            `json:"lab_id"`
	LabCode      string               `json:"lab_code"`
	LabVenueID   uuid.UUID            `json:"lab_venue_id"`
	LabTypeID    uuid.UUID            `json:"lab_type_id"`
	LabStatus    model.LabStatus      `json:"lab_status"`
	LabStartDate dbtime.Date          `json:"lab_start_date"`
	LabStartTime dbtime.Tod           `json:"lab_start_time"`
	LabEndDate   dbtime.Date          `json:"lab_end_date"`
	LabVersion   int                  `json:"lab_version"`
	LabNotes     *string              `json:"lab_notes,omitempty"`
	LabMeetings  []LabMeetingResponse `json:"lab_meetings,omitempty"`
	LabCreatedAt time.Time            `json:"lab_created_at"`
	LabUpdatedAt time.Time            `json:"lab_updated_at"`
}

func FromMeeting(m model.LabMeetingModel) LabMeetingResponse {
	return LabMeetingResponse{
		LabMeetingID:            m.LabMeetingID,
		LabMeetingOrder:         m.LabMeetingOrder,
		LabMeetingDate:          m.LabMeetingDate,
		LabMeetingStatus:        m.LabMeetingStatus,
		LabMeetingAttendedCount: m.LabMeetingAttendedCount,
		LabMeetingEnrolledCount: m.LabMeetingEnrolledCount,
	}
}

func FromModel(m model.LabModel) LabResponse {
	out := LabResponse{
		LabID:        m.LabID,
		LabCode:      m.LabCode,
		LabVenueID:   m.LabVenueID,
		LabTypeID:    m.LabTypeID,
		LabStatus:    m.LabStatus,
		LabStartDate: m.LabStartDate,
		LabStartTime: m.LabStartTime,
		LabEndDate:   m.LabEndDate,
		LabVersion:   m.LabVersion,
		LabNotes:     m.LabNotes,
		LabCreatedAt: m.LabCreatedAt,
		LabUpdatedAt: m.LabUpdatedAt,
	}
	for _, mt := range m.LabMeetings {
		out.LabMeetings = append(out.LabMeetings, FromMeeting(mt))
	}
	return out
}

// FromModels is used by the list endpoint; meetings are not loaded there.
func FromModels(rows []model.LabModel) []LabResponse {
	out := make([]LabResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
