// file: internals/features/labs/labs/model/lab_meeting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"easypeasy_backend/internals/helpers/dbtime"
)

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusDone      MeetingStatus = "done"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// LabMeetingModel is one occurrence inside a lab. Owned exclusively by its lab.
type LabMeetingModel struct {
	LabMeetingID            uuid.UUID     `json:"lab_meeting_id" gorm:"type:uuid;primaryKey;column:lab_meeting_id"`
	LabMeetingLabID         uuid.UUID     `json:"lab_meeting_lab_id" gorm:"type:uuid;not null;uniqueIndex:uq_lab_meetings_order,priority:1;column:lab_meeting_lab_id"`
	LabMeetingOrder         int           `json:"lab_meeting_order" gorm:"not null;uniqueIndex:uq_lab_meetings_order,priority:2;column:lab_meeting_order"`
	LabMeetingDate          dbtime.Date   `json:"lab_meeting_date" gorm:"type:date;not null;column:lab_meeting_date"`
	LabMeetingStatus        MeetingStatus `json:"lab_meeting_status" gorm:"type:varchar(20);not null;default:'scheduled';column:lab_meeting_status"`
	LabMeetingAttendedCount int           `json:"lab_meeting_attended_count" gorm:"not null;default:0;column:lab_meeting_attended_count"`
	LabMeetingEnrolledCount int           `json:"lab_meeting_enrolled_count" gorm:"not null;default:0;column:lab_meeting_enrolled_count"`

	LabMeetingCreatedAt time.Time `json:"lab_meeting_created_at" gorm:"column:lab_meeting_created_at;autoCreateTime"`
	LabMeetingUpdatedAt time.Time `json:"lab_meeting_updated_at" gorm:"column:lab_meeting_updated_at;autoUpdateTime"`
}

func (LabMeetingModel) TableName() string { return "lab_meetings" }

func (m *LabMeetingModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabMeetingID == uuid.Nil {
		m.LabMeetingID = uuid.New()
	}
	return nil
}
