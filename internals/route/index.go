// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"easypeasy_backend/internals/features/labs/lookup"
	"easypeasy_backend/internals/middlewares"
	routeDetails "easypeasy_backend/internals/route/details"
)

var startTime = time.Now()

// SetupRoutes mounts the health endpoints and the /api group.
// lk may be nil; a memory-cached lookup is created then.
func SetupRoutes(app *fiber.App, db *gorm.DB, lk *lookup.Service) {
	startTime = time.Now()
	if lk == nil {
		lk = lookup.New(db, nil)
	}

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up /api group...")
	api := app.Group("/api", middlewares.GlobalRateLimiter())

	log.Println("[INFO] Setting up LabsRoutes...")
	routeDetails.LabsRoutes(api, db, lk)
}
