// file: internals/features/labs/lab_types/model/lab_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LabTypeModel is a category of lab and how many weekly meetings it runs.
type LabTypeModel struct {
	LabTypeID           uuid.UUID      `json:"lab_type_id" gorm:"type:uuid;primaryKey;column:lab_type_id"`
	LabTypeName         string         `json:"lab_type_name" gorm:"type:text;not null;column:lab_type_name"`
	LabTypeCode         string         `json:"lab_type_code" gorm:"type:varchar(20);not null;uniqueIndex:uq_lab_types_code;column:lab_type_code"`
	LabTypeMeetingCount int            `json:"lab_type_meeting_count" gorm:"not null;default:0;check:lab_type_meeting_count >= 0;column:lab_type_meeting_count"`
	LabTypeDescription  *string        `json:"lab_type_description,omitempty" gorm:"type:text;column:lab_type_description"`
	LabTypeMetadata     datatypes.JSON `json:"lab_type_metadata" gorm:"type:jsonb;column:lab_type_metadata"`

	LabTypeCreatedAt time.Time      `json:"lab_type_created_at" gorm:"column:lab_type_created_at;autoCreateTime"`
	LabTypeUpdatedAt time.Time      `json:"lab_type_updated_at" gorm:"column:lab_type_updated_at;autoUpdateTime"`
	LabTypeDeletedAt gorm.DeletedAt `json:"lab_type_deleted_at,omitempty" gorm:"column:lab_type_deleted_at;index"`
}

func (LabTypeModel) TableName() string { return "lab_types" }

func (m *LabTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabTypeID == uuid.Nil {
		m.LabTypeID = uuid.New()
	}
	return nil
}
