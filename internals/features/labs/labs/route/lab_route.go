// file: internals/features/labs/labs/route/lab_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "easypeasy_backend/internals/features/labs/labs/controller"
	"easypeasy_backend/internals/features/labs/labs/repository"
	"easypeasy_backend/internals/features/labs/labs/service"
	"easypeasy_backend/internals/features/labs/lookup"
)

// LabRoutes mounts /labs and its meeting sub-resources on api.
// scheduleGuards run before every handler that rewrites a meeting set.
func LabRoutes(api fiber.Router, db *gorm.DB, lk *lookup.Service, scheduleGuards ...fiber.Handler) {
	svc := service.NewLabService(repository.New(db), lk)
	ctl := ctrl.NewLabController(svc, nil)

	g := api.Group("/labs")
	// static path first so it is not captured by /:id
	g.Post("/schedule/preview", ctl.Preview)

	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)

	g.Post("/:id/meetings/:order/reschedule", append(scheduleGuards, ctl.Reschedule)...)
	g.Patch("/:id/meetings/:order", ctl.PatchMeeting)
}
