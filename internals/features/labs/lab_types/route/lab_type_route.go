// file: internals/features/labs/lab_types/route/lab_type_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "easypeasy_backend/internals/features/labs/lab_types/controller"
	"easypeasy_backend/internals/features/labs/lookup"
)

// LabTypeRoutes mounts /lab-types on api.
func LabTypeRoutes(api fiber.Router, db *gorm.DB, lk *lookup.Service) {
	ctl := ctrl.NewLabTypeController(db, nil, lk)

	g := api.Group("/lab-types")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
