// file: internals/features/labs/labs/controller/lab_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	dto "easypeasy_backend/internals/features/labs/labs/dto"
	"easypeasy_backend/internals/features/labs/labs/model"
	"easypeasy_backend/internals/features/labs/labs/repository"
	"easypeasy_backend/internals/features/labs/labs/service"
	"easypeasy_backend/internals/features/labs/lookup"
	helper "easypeasy_backend/internals/helpers"
	"easypeasy_backend/internals/helpers/dbtime"
)

type LabController struct {
	Service  *service.LabService
	Validate *validator.Validate
}

func NewLabController(svc *service.LabService, v *validator.Validate) *LabController {
	return &LabController{Service: svc, Validate: helper.Validator(v)}
}

// writeLabError turns service / repository errors into the JSON error shape.
func writeLabError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidScheduleInput), errors.Is(err, dbtime.ErrInvalidDate):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMeetingNotFound),
		errors.Is(err, repository.ErrLabNotFound),
		errors.Is(err, lookup.ErrVenueNotFound),
		errors.Is(err, lookup.ErrLabTypeNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.WritePGError(c, err)
	}
}

var errInvalidOrder = errors.New("meeting order must be a positive integer")

func parseLabID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params("id")))
}

func parseOrder(c *fiber.Ctx) (int, error) {
	n, err := c.ParamsInt("order")
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errInvalidOrder
	}
	return n, nil
}

/* ============================ CREATE ============================ */

func (ctl *LabController) Create(c *fiber.Ctx) error {
	var req dto.CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}
	if req.LabStartDate.IsZero() {
		return helper.JsonValidationError(c, map[string][]string{"lab_start_date": {"required"}})
	}

	lab, err := ctl.Service.CreateLab(c.UserContext(), req.ToInput())
	if err != nil {
		log.Printf("[Lab.Create] venue=%s type=%s err=%v", req.LabVenueID, req.LabTypeID, err)
		return writeLabError(c, err)
	}
	return helper.JsonCreated(c, "Lab created", dto.FromModel(*lab))
}

/* ============================ LIST / GET ============================ */

func (ctl *LabController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	f := repository.ListFilter{
		Q:      c.Query("q"),
		Offset: p.Offset,
		Limit:  p.Limit,
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := model.LabStatus(strings.ToLower(s))
		f.Status = &st
	}
	if s := strings.TrimSpace(c.Query("venue_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid venue_id")
		}
		f.VenueID = &id
	}
	if s := strings.TrimSpace(c.Query("lab_type_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab_type_id")
		}
		f.LabTypeID = &id
	}

	rows, total, err := ctl.Service.ListLabs(c.UserContext(), f)
	if err != nil {
		return writeLabError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p, len(rows)))
}

func (ctl *LabController) GetByID(c *fiber.Ctx) error {
	id, err := parseLabID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}
	lab, err := ctl.Service.GetLab(c.UserContext(), id)
	if err != nil {
		return writeLabError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*lab))
}

/* ============================ PATCH / DELETE ============================ */

func (ctl *LabController) Patch(c *fiber.Ctx) error {
	id, err := parseLabID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}
	var req dto.UpdateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}

	lab, err := ctl.Service.UpdateLab(c.UserContext(), id, req.ToInput())
	if err != nil {
		log.Printf("[Lab.Patch] lab=%s err=%v", id, err)
		return writeLabError(c, err)
	}
	return helper.JsonUpdated(c, "Lab updated", dto.FromModel(*lab))
}

func (ctl *LabController) Delete(c *fiber.Ctx) error {
	id, err := parseLabID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}
	if err := ctl.Service.DeleteLab(c.UserContext(), id); err != nil {
		return writeLabError(c, err)
	}
	return helper.JsonDeleted(c, "Lab deleted", fiber.Map{"lab_id": id})
}

/* ============================ MEETINGS ============================ */

// Reschedule moves one meeting and shifts every later meeting by the same delta.
func (ctl *LabController) Reschedule(c *fiber.Ctx) error {
	id, err := parseLabID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}
	order, err := parseOrder(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting order")
	}
	var req dto.RescheduleMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}
	if req.NewDate.IsZero() {
		return helper.JsonValidationError(c, map[string][]string{"new_date": {"required"}})
	}

	lab, err := ctl.Service.RescheduleMeeting(c.UserContext(), id, order, req.NewDate, req.Version)
	if err != nil {
		log.Printf("[Lab.Reschedule] lab=%s order=%d err=%v", id, order, err)
		return writeLabError(c, err)
	}
	return helper.JsonUpdated(c, "Meeting rescheduled", dto.FromModel(*lab))
}

func (ctl *LabController) PatchMeeting(c *fiber.Ctx) error {
	id, err := parseLabID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}
	order, err := parseOrder(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid meeting order")
	}
	var req dto.UpdateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}

	m, err := ctl.Service.UpdateMeeting(c.UserContext(), id, order, req.ToInput())
	if err != nil {
		return writeLabError(c, err)
	}
	return helper.JsonUpdated(c, "Meeting updated", dto.FromMeeting(*m))
}

/* ============================ PREVIEW ============================ */

func (ctl *LabController) Preview(c *fiber.Ctx) error {
	var req dto.PreviewScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload: "+err.Error())
	}
	if ok, err := helper.ValidateStruct(c, ctl.Validate, &req); !ok {
		return err
	}
	if req.StartDate.IsZero() {
		return helper.JsonValidationError(c, map[string][]string{"start_date": {"required"}})
	}

	s, err := ctl.Service.PreviewSchedule(c.UserContext(), req.StartDate, req.MeetingCount, req.LabTypeID)
	if err != nil {
		return writeLabError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromSchedule(s))
}
