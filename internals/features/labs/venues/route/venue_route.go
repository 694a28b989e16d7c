// file: internals/features/labs/venues/route/venue_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"easypeasy_backend/internals/features/labs/lookup"
	ctrl "easypeasy_backend/internals/features/labs/venues/controller"
)

func VenueRoutes(api fiber.Router, db *gorm.DB, lk *lookup.Service) {
	ctl := ctrl.NewVenueController(db, nil, lk)

	g := api.Group("/venues")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
