// file: internals/seeds/labs/seed_catalog.go
package labs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	labTypeModel "easypeasy_backend/internals/features/labs/lab_types/model"
	venueModel "easypeasy_backend/internals/features/labs/venues/model"
	helper "easypeasy_backend/internals/helpers"
)

type LabTypeSeed struct {
	Name         string `yaml:"name"`
	Code         string `yaml:"code"`
	MeetingCount int    `yaml:"meeting_count"`
	Description  string `yaml:"description"`
}

type VenueSeed struct {
	Name         string   `yaml:"name"`
	Code         string   `yaml:"code"`
	SupplierName string   `yaml:"supplier_name"`
	Address      string   `yaml:"address"`
	City         string   `yaml:"city"`
	Features     []string `yaml:"features"`
}

type Catalog struct {
	LabTypes []LabTypeSeed `yaml:"lab_types"`
	Venues   []VenueSeed   `yaml:"venues"`
}

type Result struct {
	LabTypesCreated int
	VenuesCreated   int
	Skipped         int
}

func LoadCatalog(filePath string) (Catalog, error) {
	var cat Catalog
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return cat, fmt.Errorf("read catalog %s: %w", filePath, err)
	}
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return cat, fmt.Errorf("decode catalog %s: %w", filePath, err)
	}
	for i, lt := range cat.LabTypes {
		if strings.TrimSpace(lt.Code) == "" || lt.MeetingCount < 0 {
			return cat, fmt.Errorf("catalog lab_types[%d]: code required and meeting_count >= 0", i)
		}
	}
	for i, v := range cat.Venues {
		if strings.TrimSpace(v.Code) == "" || strings.TrimSpace(v.Name) == "" {
			return cat, fmt.Errorf("catalog venues[%d]: name and code required", i)
		}
	}
	return cat, nil
}

// SeedCatalogFromYAML inserts lab types and venues whose code is not stored yet.
func SeedCatalogFromYAML(db *gorm.DB, filePath string) (Result, error) {
	log.Println("📥 Reading catalog:", filePath)
	cat, err := LoadCatalog(filePath)
	if err != nil {
		return Result{}, err
	}
	return SeedCatalog(db, cat)
}

func SeedCatalog(db *gorm.DB, cat Catalog) (Result, error) {
	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		existingTypes, err := existingCodes(tx, &labTypeModel.LabTypeModel{}, "lab_type_code")
		if err != nil {
			return err
		}
		var newTypes []labTypeModel.LabTypeModel
		for _, s := range cat.LabTypes {
			code := strings.ToUpper(strings.TrimSpace(s.Code))
			if existingTypes[code] {
				log.Printf("ℹ️ Lab type '%s' already exists, skipped.", code)
				res.Skipped++
				continue
			}
			existingTypes[code] = true
			m := labTypeModel.LabTypeModel{
				LabTypeName:         strings.TrimSpace(s.Name),
				LabTypeCode:         code,
				LabTypeMeetingCount: s.MeetingCount,
			}
			if d := strings.TrimSpace(s.Description); d != "" {
				m.LabTypeDescription = &d
			}
			newTypes = append(newTypes, m)
		}
		if len(newTypes) > 0 {
			if err := tx.Create(&newTypes).Error; err != nil {
				return fmt.Errorf("insert lab types: %w", err)
			}
		}
		res.LabTypesCreated = len(newTypes)

		existingVenues, err := existingCodes(tx, &venueModel.VenueModel{}, "venue_code")
		if err != nil {
			return err
		}
		var newVenues []venueModel.VenueModel
		for _, s := range cat.Venues {
			code := strings.ToUpper(strings.TrimSpace(s.Code))
			if existingVenues[code] {
				log.Printf("ℹ️ Venue '%s' already exists, skipped.", code)
				res.Skipped++
				continue
			}
			existingVenues[code] = true
			m := venueModel.VenueModel{
				VenueName:     strings.TrimSpace(s.Name),
				VenueCode:     code,
				VenueSlug:     helper.Slugify(s.Name, 80),
				VenueIsActive: true,
				VenueFeatures: featuresJSON(s.Features),
			}
			m.VenueSupplierName = optional(s.SupplierName)
			m.VenueAddress = optional(s.Address)
			m.VenueCity = optional(s.City)
			newVenues = append(newVenues, m)
		}
		if len(newVenues) > 0 {
			if err := tx.Create(&newVenues).Error; err != nil {
				return fmt.Errorf("insert venues: %w", err)
			}
		}
		res.VenuesCreated = len(newVenues)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Printf("✅ Catalog seeded: lab_types=%d venues=%d skipped=%d", res.LabTypesCreated, res.VenuesCreated, res.Skipped)
	return res, nil
}

// existingCodes includes soft-deleted rows; the unique index covers them too.
func existingCodes(tx *gorm.DB, m any, column string) (map[string]bool, error) {
	var codes []string
	if err := tx.Unscoped().Model(m).Pluck(column, &codes).Error; err != nil {
		return nil, fmt.Errorf("load existing %s: %w", column, err)
	}
	out := make(map[string]bool, len(codes))
	for _, c := range codes {
		out[strings.ToUpper(c)] = true
	}
	return out, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func featuresJSON(v []string) datatypes.JSON {
	if len(v) == 0 {
		return datatypes.JSON("[]")
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
