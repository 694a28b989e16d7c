// file: internals/features/labs/venues/controller/venue_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"easypeasy_backend/internals/features/labs/lookup"
	dto "easypeasy_backend/internals/features/labs/venues/dto"
	model "easypeasy_backend/internals/features/labs/venues/model"
	helper "easypeasy_backend/internals/helpers"
)

const venueSlugMaxLen = 80

type VenueController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Lookup   *lookup.Service
}

func NewVenueController(db *gorm.DB, v *validator.Validate, lk *lookup.Service) *VenueController {
	return &VenueController{DB: db, Validate: helper.Validator(v), Lookup: lk}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

// case-insensitive unique slug; soft-deleted rows are ignored
func (ctl *VenueController) uniqueSlug(ctx context.Context, name string, self *uuid.UUID) (string, error) {
	base := helper.Slugify(name, venueSlugMaxLen)
	if base == "" {
		base = "venue"
	}
	return helper.EnsureUniqueSlugCI(ctx, ctl.DB, "venues", "venue_slug", base, func(q *gorm.DB) *gorm.DB {
		q = q.Where("venue_deleted_at IS NULL")
		if self != nil {
			q = q.Where("venue_id <> ?", *self)
		}
		return q
	}, venueSlugMaxLen)
}

/* ============================ CREATE ============================ */

func (ctl *VenueController) Create(c *fiber.Ctx) error {
	var req dto.CreateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	if m.VenueSlug, err = ctl.uniqueSlug(ctx, m.VenueName, nil); err != nil {
		return helper.WritePGError(c, err)
	}
	if err := ctl.DB.WithContext(ctx).Create(&m).Error; err != nil {
		log.Printf("[Venue.Create] code=%s err=%v", m.VenueCode, err)
		return helper.WritePGError(c, err)
	}
	return helper.JsonCreated(c, "Venue created", dto.FromModel(m))
}

/* ============================ LIST / GET ============================ */

func (ctl *VenueController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.VenueModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(venue_name) LIKE ? OR LOWER(venue_code) LIKE ?", like, like)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(venue_city) = ?", strings.ToLower(city))
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("is_active"))) {
	case "true", "1":
		q = q.Where("venue_is_active = ?", true)
	case "false", "0":
		q = q.Where("venue_is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	var rows []model.VenueModel
	if err := q.Order("venue_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p, len(rows)))
}

func (ctl *VenueController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var m model.VenueModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "venue_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Venue not found")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ============================ PATCH ============================ */

func (ctl *VenueController) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req dto.UpdateVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	var m model.VenueModel
	if err := ctl.DB.WithContext(ctx).First(&m, "venue_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Venue not found")
		}
		return helper.WritePGError(c, err)
	}

	oldName := m.VenueName
	if err := req.ApplyPatch(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if m.VenueName != oldName {
		if m.VenueSlug, err = ctl.uniqueSlug(ctx, m.VenueName, &m.VenueID); err != nil {
			return helper.WritePGError(c, err)
		}
	}
	if err := ctl.DB.WithContext(ctx).Save(&m).Error; err != nil {
		log.Printf("[Venue.Patch] id=%s err=%v", id, err)
		return helper.WritePGError(c, err)
	}
	if ctl.Lookup != nil {
		ctl.Lookup.InvalidateVenue(ctx, id)
	}
	return helper.JsonUpdated(c, "Venue updated", dto.FromModel(m))
}

/* ============================ DELETE ============================ */

func (ctl *VenueController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := c.UserContext()
	res := ctl.DB.WithContext(ctx).Delete(&model.VenueModel{}, "venue_id = ?", id)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Venue not found")
	}
	if ctl.Lookup != nil {
		ctl.Lookup.InvalidateVenue(ctx, id)
	}
	return helper.JsonDeleted(c, "Venue deleted", fiber.Map{"venue_id": id})
}
