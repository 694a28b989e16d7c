// file: internals/features/labs/lab_types/dto/lab_type_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"easypeasy_backend/internals/features/labs/lab_types/model"
)

/* ========== CREATE ========== */

type CreateLabTypeRequest struct {
	LabTypeName         string         `json:"lab_type_name" validate:"required,max=120"`
	LabTypeCode         string         `json:"lab_type_code" validate:"required,max=20"`
	LabTypeMeetingCount *int           `json:"lab_type_meeting_count" validate:"required,min=0,max=104"`
	LabTypeDescription  *string        `json:"lab_type_description" validate:"omitempty"`
	LabTypeMetadata     map[string]any `json:"lab_type_metadata" validate:"omitempty"`
}

func (r CreateLabTypeRequest) ToModel() (model.LabTypeModel, error) {
	m := model.LabTypeModel{
		LabTypeName:        strings.TrimSpace(r.LabTypeName),
		LabTypeCode:        strings.ToUpper(strings.TrimSpace(r.LabTypeCode)),
		LabTypeDescription: r.LabTypeDescription,
	}
	if r.LabTypeMeetingCount != nil {
		m.LabTypeMeetingCount = *r.LabTypeMeetingCount
	}
	if err := setJSONMap(&m.LabTypeMetadata, r.LabTypeMetadata); err != nil {
		return m, err
	}
	return m, nil
}

/* ========== PATCH ========== */

type UpdateLabTypeRequest struct {
	LabTypeName         *string         `json:"lab_type_name" validate:"omitempty,max=120"`
	LabTypeCode         *string         `json:"lab_type_code" validate:"omitempty,max=20"`
	LabTypeMeetingCount *int            `json:"lab_type_meeting_count" validate:"omitempty,min=0,max=104"`
	LabTypeDescription  *string         `json:"lab_type_description" validate:"omitempty"`
	LabTypeMetadata     *map[string]any `json:"lab_type_metadata" validate:"omitempty"`
}

func (r UpdateLabTypeRequest) ApplyPatch(m *model.LabTypeModel) error {
	if r.LabTypeName != nil {
		m.LabTypeName = strings.TrimSpace(*r.LabTypeName)
	}
	if r.LabTypeCode != nil {
		m.LabTypeCode = strings.ToUpper(strings.TrimSpace(*r.LabTypeCode))
	}
	if r.LabTypeMeetingCount != nil {
		m.LabTypeMeetingCount = *r.LabTypeMeetingCount
	}
	if r.LabTypeDescription != nil {
		m.LabTypeDescription = r.LabTypeDescription
	}
	if r.LabTypeMetadata != nil {
		if err := setJSONMap(&m.LabTypeMetadata, *r.LabTypeMetadata); err != nil {
			return err
		}
	}
	return nil
}

/* ========== RESPONSE ========== */

type LabTypeResponse struct {
	LabTypeID           uuid.UUID      `json:"lab_type_id"`
	LabTypeName         string         `json:"lab_type_name"`
	LabTypeCode         string         `json:"lab_type_code"`
	LabTypeMeetingCount int            `json:"lab_type_meeting_count"`
	LabTypeDescription  *string        `json:"lab_type_description,omitempty"`
	LabTypeMetadata     datatypes.JSON `json:"lab_type_metadata,omitempty"`
	LabTypeCreatedAt    time.Time      `json:"lab_type_created_at"`
	LabTypeUpdatedAt    time.Time      `json:"lab_type_updated_at"`
}

func FromModel(m model.LabTypeModel) LabTypeResponse {
	return LabTypeResponse{
		LabTypeID:           m.LabTypeID,
		LabTypeName:         m.LabTypeName,
		LabTypeCode:         m.LabTypeCode,
		LabTypeMeetingCount: m.LabTypeMeetingCount,
		LabTypeDescription:  m.LabTypeDescription,
		LabTypeMetadata:     m.LabTypeMetadata,
		LabTypeCreatedAt:    m.LabTypeCreatedAt,
		LabTypeUpdatedAt:    m.LabTypeUpdatedAt,
	}
}

func FromModels(rows []model.LabTypeModel) []LabTypeResponse {
	out := make([]LabTypeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

func setJSONMap(dst *datatypes.JSON, v map[string]any) error {
	if v == nil {
		*dst = nil
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*dst = datatypes.JSON(b)
	return nil
}
