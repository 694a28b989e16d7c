// file: internals/features/labs/lab_types/controller/lab_type_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	dto "easypeasy_backend/internals/features/labs/lab_types/dto"
	model "easypeasy_backend/internals/features/labs/lab_types/model"
	"easypeasy_backend/internals/features/labs/lookup"
	helper "easypeasy_backend/internals/helpers"
)

type LabTypeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Lookup   *lookup.Service
}

func NewLabTypeController(db *gorm.DB, v *validator.Validate, lk *lookup.Service) *LabTypeController {
	return &LabTypeController{DB: db, Validate: helper.Validator(v), Lookup: lk}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

/* ============================ CREATE ============================ */

func (ctl *LabTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateLabTypeRequest
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
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		log.Printf("[LabType.Create] code=%s err=%v", m.LabTypeCode, err)
		return helper.WritePGError(c, err)
	}
	return helper.JsonCreated(c, "Lab type created", dto.FromModel(m))
}

/* ============================ LIST / GET ============================ */

func (ctl *LabTypeController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.LabTypeModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(lab_type_name) LIKE ? OR LOWER(lab_type_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	var rows []model.LabTypeModel
	if err := q.Order("lab_type_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p, len(rows)))
}

func (ctl *LabTypeController) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var m model.LabTypeModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "lab_type_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab type not found")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

/* ============================ PATCH ============================ */

// Patch does not touch existing labs; meeting count changes apply to labs created afterwards.
func (ctl *LabTypeController) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req dto.UpdateLabTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	var m model.LabTypeModel
	if err := ctl.DB.WithContext(ctx).First(&m, "lab_type_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab type not found")
		}
		return helper.WritePGError(c, err)
	}
	if err := req.ApplyPatch(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.DB.WithContext(ctx).Save(&m).Error; err != nil {
		log.Printf("[LabType.Patch] id=%s err=%v", id, err)
		return helper.WritePGError(c, err)
	}
	if ctl.Lookup != nil {
		ctl.Lookup.InvalidateLabType(ctx, id)
	}
	return helper.JsonUpdated(c, "Lab type updated", dto.FromModel(m))
}

/* ============================ DELETE ============================ */

func (ctl *LabTypeController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	ctx := c.UserContext()
	res := ctl.DB.WithContext(ctx).Delete(&model.LabTypeModel{}, "lab_type_id = ?", id)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lab type not found")
	}
	if ctl.Lookup != nil {
		ctl.Lookup.InvalidateLabType(ctx, id)
	}
	return helper.JsonDeleted(c, "Lab type deleted", fiber.Map{"lab_type_id": id})
}
