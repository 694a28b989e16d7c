// file: internals/features/labs/labs/repository/lab_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"easypeasy_backend/internals/features/labs/labs/model"
	"easypeasy_backend/internals/helpers/dbtime"
)

var (
	ErrLabNotFound     = errors.New("lab not found")
	ErrVersionConflict = errors.New("lab was modified by someone else")
)

type ListFilter struct {
	Status    *model.LabStatus
	VenueID   *uuid.UUID
	LabTypeID *uuid.UUID
	Q         string
	Offset    int
	Limit     int
}

// LabRepository persists labs together with their full meeting set.
type LabRepository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *LabRepository { return &LabRepository{DB: db} }

func (r *LabRepository) CreateLab(ctx context.Context, lab *model.LabModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sortMeetings(lab.LabMeetings)
		lab.LabEndDate = endDateOf(lab.LabMeetings)
		meetings := lab.LabMeetings
		lab.LabMeetings = nil
		if lab.LabVersion == 0 {
			lab.LabVersion = 1
		}
		if err := tx.Omit(clause.Associations).Create(lab).Error; err != nil {
			return err
		}
		if err := insertMeetings(tx, lab.LabID, meetings); err != nil {
			return err
		}
		lab.LabMeetings = meetings
		return nil
	})
}

func (r *LabRepository) GetLab(ctx context.Context, id uuid.UUID) (*model.LabModel, error) {
	return getLab(r.DB.WithContext(ctx), id)
}

func getLab(db *gorm.DB, id uuid.UUID) (*model.LabModel, error) {
	var lab model.LabModel
	err := db.
		Preload("LabMeetings", func(q *gorm.DB) *gorm.DB {
			return q.Order("lab_meeting_order ASC")
		}).
		First(&lab, "lab_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLabNotFound, id)
		}
		return nil, err
	}
	return &lab, nil
}

func (r *LabRepository) ListLabs(ctx context.Context, f ListFilter) ([]model.LabModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.LabModel{})
	if f.Status != nil {
		q = q.Where("lab_status = ?", *f.Status)
	}
	if f.VenueID != nil {
		q = q.Where("lab_venue_id = ?", *f.VenueID)
	}
	if f.LabTypeID != nil {
		q = q.Where("lab_type_id = ?", *f.LabTypeID)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		q = q.Where("LOWER(lab_code) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.LabModel
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("lab_start_date DESC, lab_code ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SaveLab replaces the stored lab row and its whole meeting set in one
// transaction and bumps the version. With expectedVersion nil the write is
// last-writer-wins.
func (r *LabRepository) SaveLab(ctx context.Context, lab *model.LabModel, expectedVersion *int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.LabModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("lab_id", "lab_version").
			First(&current, "lab_id = ?", lab.LabID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrLabNotFound, lab.LabID)
			}
			return err
		}
		if expectedVersion != nil && *expectedVersion != current.LabVersion {
			return fmt.Errorf("%w: expected version %d, stored %d", ErrVersionConflict, *expectedVersion, current.LabVersion)
		}

		sortMeetings(lab.LabMeetings)
		lab.LabEndDate = endDateOf(lab.LabMeetings)
		lab.LabVersion = current.LabVersion + 1

		res := tx.Model(&model.LabModel{}).
			Where("lab_id = ? AND lab_version = ?", lab.LabID, current.LabVersion).
			Updates(map[string]any{
				"lab_code":       lab.LabCode,
				"lab_venue_id":   lab.LabVenueID,
				"lab_type_id":    lab.LabTypeID,
				"lab_status":     lab.LabStatus,
				"lab_start_date": lab.LabStartDate,
				"lab_start_time": lab.LabStartTime,
				"lab_end_date":   lab.LabEndDate,
				"lab_version":    lab.LabVersion,
				"lab_notes":      lab.LabNotes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: stored version moved past %d", ErrVersionConflict, current.LabVersion)
		}

		if err := tx.Where("lab_meeting_lab_id = ?", lab.LabID).
			Delete(&model.LabMeetingModel{}).Error; err != nil {
			return err
		}
		return insertMeetings(tx, lab.LabID, lab.LabMeetings)
	})
}

// UpdateMeeting changes status / attendance of one meeting in place.
func (r *LabRepository) UpdateMeeting(ctx context.Context, labID uuid.UUID, order int, fields map[string]any) (*model.LabMeetingModel, error) {
	var m model.LabMeetingModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "lab_meeting_lab_id = ? AND lab_meeting_order = ?", labID, order).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&m).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&m, "lab_meeting_id = ?", m.LabMeetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteLab removes the lab and every meeting it owns.
func (r *LabRepository) DeleteLab(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lab_meeting_lab_id = ?", id).Delete(&model.LabMeetingModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.LabModel{}, "lab_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrLabNotFound, id)
		}
		return nil
	})
}

/* =========================
   Status sweep
========================= */

// ActivateStarted moves planned labs that started on/before today to active.
func (r *LabRepository) ActivateStarted(ctx context.Context, today dbtime.Date) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.LabModel{}).
		Where("lab_status = ? AND lab_start_date <= ?", model.LabStatusPlanned, today).
		Updates(map[string]any{
			"lab_status":  model.LabStatusActive,
			"lab_version": gorm.Expr("lab_version + 1"),
		})
	return res.RowsAffected, res.Error
}

// CompleteEnded moves active labs whose last meeting is before today to completed.
func (r *LabRepository) CompleteEnded(ctx context.Context, today dbtime.Date) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.LabModel{}).
		Where("lab_status = ? AND lab_end_date IS NOT NULL AND lab_end_date < ?", model.LabStatusActive, today).
		Updates(map[string]any{
			"lab_status":  model.LabStatusCompleted,
			"lab_version": gorm.Expr("lab_version + 1"),
		})
	return res.RowsAffected, res.Error
}

/* =========================
   Helpers
========================= */

func insertMeetings(tx *gorm.DB, labID uuid.UUID, meetings []model.LabMeetingModel) error {
	if len(meetings) == 0 {
		return nil
	}
	for i := range meetings {
		if meetings[i].LabMeetingID == uuid.Nil {
			meetings[i].LabMeetingID = uuid.New()
		}
		meetings[i].LabMeetingLabID = labID
		if meetings[i].LabMeetingStatus == "" {
			meetings[i].LabMeetingStatus = model.MeetingStatusScheduled
		}
	}
	return tx.CreateInBatches(&meetings, 200).Error
}

func sortMeetings(ms []model.LabMeetingModel) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].LabMeetingOrder < ms[j].LabMeetingOrder })
}

func endDateOf(ms []model.LabMeetingModel) dbtime.Date {
	if len(ms) == 0 {
		return dbtime.Date{}
	}
	return ms[len(ms)-1].LabMeetingDate
}
