// file: internals/features/labs/venues/dto/venue_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"easypeasy_backend/internals/features/labs/venues/model"
)

/* ========== CREATE ========== */

type CreateVenueRequest struct {
	VenueName         string   `json:"venue_name" validate:"required,max=160"`
	VenueCode         string   `json:"venue_code" validate:"required,max=30"`
	VenueSupplierName *string  `json:"venue_supplier_name" validate:"omitempty,max=160"`
	VenueAddress      *string  `json:"venue_address" validate:"omitempty,max=500"`
	VenueCity         *string  `json:"venue_city" validate:"omitempty,max=120"`
	VenueIsActive     *bool    `json:"venue_is_active" validate:"omitempty"`
	VenueFeatures     []string `json:"venue_features" validate:"omitempty,dive,printascii"`
}

func (r CreateVenueRequest) ToModel() (model.VenueModel, error) {
	m := model.VenueModel{
		VenueName:         strings.TrimSpace(r.VenueName),
		VenueCode:         strings.ToUpper(strings.TrimSpace(r.VenueCode)),
		VenueSupplierName: r.VenueSupplierName,
		VenueAddress:      r.VenueAddress,
		VenueCity:         r.VenueCity,
		VenueIsActive:     true,
	}
	if r.VenueIsActive != nil {
		m.VenueIsActive = *r.VenueIsActive
	}
	if err := setJSONFromStrings(&m.VenueFeatures, r.VenueFeatures); err != nil {
		return m, err
	}
	return m, nil
}

/* ========== PATCH ========== */

type UpdateVenueRequest struct {
	VenueName         *string   `json:"venue_name" validate:"omitempty,max=160"`
	VenueCode         *string   `json:"venue_code" validate:"omitempty,max=30"`
	VenueSupplierName *string   `json:"venue_supplier_name" validate:"omitempty,max=160"`
	VenueAddress      *string   `json:"venue_address" validate:"omitempty,max=500"`
	VenueCity         *string   `json:"venue_city" validate:"omitempty,max=120"`
	VenueIsActive     *bool     `json:"venue_is_active" validate:"omitempty"`
	VenueFeatures     *[]string `json:"venue_features" validate:"omitempty,dive,printascii"`
}

func (r UpdateVenueRequest) ApplyPatch(m *model.VenueModel) error {
	if r.VenueName != nil {
		m.VenueName = strings.TrimSpace(*r.VenueName)
	}
	if r.VenueCode != nil {
		m.VenueCode = strings.ToUpper(strings.TrimSpace(*r.VenueCode))
	}
	if r.VenueSupplierName != nil {
		m.VenueSupplierName = r.VenueSupplierName
	}
	if r.VenueAddress != nil {
		m.VenueAddress = r.VenueAddress
	}
	if r.VenueCity != nil {
		m.VenueCity = r.VenueCity
	}
	if r.VenueIsActive != nil {
		m.VenueIsActive = *r.VenueIsActive
	}
	if r.VenueFeatures != nil {
		if err := setJSONFromStrings(&m.VenueFeatures, *r.VenueFeatures); err != nil {
			return err
		}
	}
	return nil
}

/* ========== RESPONSE ========== */

type VenueResponse struct {
	VenueID           uuid.UUID      `json:"venue_id"`
	VenueName         string         `json:"venue_name"`
	VenueCode         string         `json:"venue_code"`
	VenueSlug         string         `json:"venue_slug"`
	VenueSupplierName *string        `json:"venue_supplier_name,omitempty"`
	VenueAddress      *string        `json:"venue_address,omitempty"`
	VenueCity         *string        `json:"venue_city,omitempty"`
	VenueIsActive     bool           `json:"venue_is_active"`
	VenueFeatures     datatypes.JSON `json:"venue_features,omitempty"`
	VenueCreatedAt    time.Time      `json:"venue_created_at"`
	VenueUpdatedAt    time.Time      `json:"venue_updated_at"`
}

func FromModel(m model.VenueModel) VenueResponse {
	return VenueResponse{
		VenueID:           m.VenueID,
		VenueName:         m.VenueName,
		VenueCode:         m.VenueCode,
		VenueSlug:         m.VenueSlug,
		VenueSupplierName: m.VenueSupplierName,
		VenueAddress:      m.VenueAddress,
		VenueCity:         m.VenueCity,
		VenueIsActive:     m.VenueIsActive,
		VenueFeatures:     m.VenueFeatures,
		VenueCreatedAt:    m.VenueCreatedAt,
		VenueUpdatedAt:    m.VenueUpdatedAt,
	}
}

func FromModels(rows []model.VenueModel) []VenueResponse {
	out := make([]VenueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// features: []string → JSONB array ("[]" when empty)
func setJSONFromStrings(dst *datatypes.JSON, v []string) error {
	clean := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return err
	}
	*dst = datatypes.JSON(b)
	return nil
}
