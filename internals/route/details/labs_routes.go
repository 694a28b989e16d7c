package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	labTypeRoute "easypeasy_backend/internals/features/labs/lab_types/route"
	labRoute "easypeasy_backend/internals/features/labs/labs/route"
	"easypeasy_backend/internals/features/labs/lookup"
	venueRoute "easypeasy_backend/internals/features/labs/venues/route"
	"easypeasy_backend/internals/middlewares"
)

func LabsRoutes(api fiber.Router, db *gorm.DB, lk *lookup.Service) {
	labTypeRoute.LabTypeRoutes(api, db, lk)
	venueRoute.VenueRoutes(api, db, lk)
	labRoute.LabRoutes(api, db, lk, middlewares.ScheduleWriteRateLimiter())
}
