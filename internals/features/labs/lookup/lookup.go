// file: internals/features/labs/lookup/lookup.go
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	labTypeModel "easypeasy_backend/internals/features/labs/lab_types/model"
	venueModel "easypeasy_backend/internals/features/labs/venues/model"
)

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrLabTypeNotFound = errors.New("lab type not found")
)

type VenueInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

type LabTypeInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	MeetingCount int       `json:"meeting_count"`
}

// Result is what the scheduling core needs to know about a lab's venue and type.
type Result struct {
	Venue   VenueInfo   `json:"venue"`
	LabType LabTypeInfo `json:"lab_type"`
}

// Service resolves venue and lab type references, read-through a Cache.
type Service struct {
	DB    *gorm.DB
	Cache Cache
}

func New(db *gorm.DB, cache Cache) *Service {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	return &Service{DB: db, Cache: cache}
}

func venueKey(id uuid.UUID) string   { return "lookup:venue:" + id.String() }
func labTypeKey(id uuid.UUID) string { return "lookup:lab_type:" + id.String() }

func (s *Service) Lookup(ctx context.Context, venueID, labTypeID uuid.UUID) (Result, error) {
	v, err := s.Venue(ctx, venueID)
	if err != nil {
		return Result{}, err
	}
	lt, err := s.LabType(ctx, labTypeID)
	if err != nil {
		return Result{}, err
	}
	return Result{Venue: v, LabType: lt}, nil
}

func (s *Service) Venue(ctx context.Context, id uuid.UUID) (VenueInfo, error) {
	var out VenueInfo
	if ok := s.cached(ctx, venueKey(id), &out); ok {
		return out, nil
	}

	var m venueModel.VenueModel
	if err := s.DB.WithContext(ctx).First(&m, "venue_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, fmt.Errorf("%w: %s", ErrVenueNotFound, id)
		}
		return out, err
	}
	out = VenueInfo{ID: m.VenueID, Name: m.VenueName, Code: m.VenueCode}
	s.store(ctx, venueKey(id), out)
	return out, nil
}

func (s *Service) LabType(ctx context.Context, id uuid.UUID) (LabTypeInfo, error) {
	var out LabTypeInfo
	if ok := s.cached(ctx, labTypeKey(id), &out); ok {
		return out, nil
	}

	var m labTypeModel.LabTypeModel
	if err := s.DB.WithContext(ctx).First(&m, "lab_type_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, fmt.Errorf("%w: %s", ErrLabTypeNotFound, id)
		}
		return out, err
	}
	out = LabTypeInfo{
		ID:           m.LabTypeID,
		Name:         m.LabTypeName,
		Code:         m.LabTypeCode,
		MeetingCount: m.LabTypeMeetingCount,
	}
	s.store(ctx, labTypeKey(id), out)
	return out, nil
}

func (s *Service) InvalidateVenue(ctx context.Context, id uuid.UUID) {
	if err := s.Cache.Delete(ctx, venueKey(id)); err != nil {
		log.Printf("[Lookup] invalidate venue %s: %v", id, err)
	}
}

func (s *Service) InvalidateLabType(ctx context.Context, id uuid.UUID) {
	if err := s.Cache.Delete(ctx, labTypeKey(id)); err != nil {
		log.Printf("[Lookup] invalidate lab type %s: %v", id, err)
	}
}

// cache failures degrade to a DB read
func (s *Service) cached(ctx context.Context, key string, dst any) bool {
	ok, err := s.Cache.Get(ctx, key, dst)
	if err != nil {
		log.Printf("[Lookup] cache get %s: %v", key, err)
		return false
	}
	return ok
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if err := s.Cache.Set(ctx, key, v); err != nil {
		log.Printf("[Lookup] cache set %s: %v", key, err)
	}
}
