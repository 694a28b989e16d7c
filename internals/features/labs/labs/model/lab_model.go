// file: internals/features/labs/labs/model/lab_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"easypeasy_backend/internals/helpers/dbtime"
)

type LabStatus string

const (
	LabStatusPlanned   LabStatus = "planned"
	LabStatusActive    LabStatus = "active"
	LabStatusPaused    LabStatus = "paused"
	LabStatusCompleted LabStatus = "completed"
	LabStatusCancelled LabStatus = "cancelled"
)

// LabModel is one scheduled offering at one venue.
// LabEndDate is derived from the meeting with the highest order; never set by hand.
type LabModel struct {
	LabID        uuid.UUID   `json:"lab_id" gorm:"type:uuid;primaryKey;column:lab_id"`
	LabCode      string      `json:"lab_code" gorm:"type:varchar(40);not null;index;column:lab_code"`
	LabVenueID   uuid.UUID   `json:"lab_venue_id" gorm:"type:uuid;not null;index;column:lab_venue_id"`
	LabTypeID    uuid.UUID   `json:"lab_type_id" gorm:"type:uuid;not null;index;column:lab_type_id"`
	LabStatus    LabStatus   `json:"lab_status" gorm:"type:varchar(20);not null;default:'planned';index;column:lab_status"`
	LabStartDate dbtime.Date `json:"lab_start_date" gorm:"type:date;not null;column:lab_start_date"`
	LabStartTime dbtime.Tod  `json:"lab_start_time" gorm:"type:time;column:lab_start_time"`
	LabEndDate   dbtime.Date `json:"lab_end_date" gorm:"type:date;column:lab_end_date"`
	LabVersion   int         `json:"lab_version" gorm:"not null;default:1;column:lab_version"`
	LabNotes     *string     `json:"lab_notes,omitempty" gorm:"type:text;column:lab_notes"`

	LabMeetings []LabMeetingModel `json:"lab_meetings" gorm:"foreignKey:LabMeetingLabID;references:LabID;constraint:OnDelete:CASCADE"`

	LabCreatedAt time.Time `json:"lab_created_at" gorm:"column:lab_created_at;autoCreateTime"`
	LabUpdatedAt time.Time `json:"lab_updated_at" gorm:"column:lab_updated_at;autoUpdateTime"`
}

func (LabModel) TableName() string { return "labs" }

func (m *LabModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabID == uuid.Nil {
		m.LabID = uuid.New()
	}
	return nil
}
