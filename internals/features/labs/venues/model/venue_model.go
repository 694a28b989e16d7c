// file: internals/features/labs/venues/model/venue_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VenueModel is a physical location (sede) owned by a supplier.
type VenueModel struct {
	VenueID           uuid.UUID `json:"venue_id" gorm:"type:uuid;primaryKey;column:venue_id"`
	VenueName         string    `json:"venue_name" gorm:"type:text;not null;column:venue_name"`
	VenueCode         string    `json:"venue_code" gorm:"type:varchar(30);not null;uniqueIndex:uq_venues_code;column:venue_code"`
	VenueSlug         string    `json:"venue_slug" gorm:"type:varchar(80);not null;column:venue_slug"`
	VenueSupplierName *string   `json:"venue_supplier_name,omitempty" gorm:"type:text;column:venue_supplier_name"`
	VenueAddress      *string   `json:"venue_address,omitempty" gorm:"type:text;column:venue_address"`
	VenueCity         *string   `json:"venue_city,omitempty" gorm:"type:text;column:venue_city"`
	VenueIsActive     bool      `json:"venue_is_active" gorm:"not null;default:true;column:venue_is_active"`

	VenueFeatures datatypes.JSON `json:"venue_features" gorm:"type:jsonb;column:venue_features"`

	VenueCreatedAt time.Time      `json:"venue_created_at" gorm:"column:venue_created_at;autoCreateTime"`
	VenueUpdatedAt time.Time      `json:"venue_updated_at" gorm:"column:venue_updated_at;autoUpdateTime"`
	VenueDeletedAt gorm.DeletedAt `json:"venue_deleted_at,omitempty" gorm:"column:venue_deleted_at;index"`
}

func (VenueModel) TableName() string { return "venues" }

func (m *VenueModel) BeforeCreate(tx *gorm.DB) error {
	if m.VenueID == uuid.Nil {
		m.VenueID = uuid.New()
	}
	return nil
}
