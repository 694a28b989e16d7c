// file: internals/middlewares/setup.go
package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/utils"
	log "github.com/sirupsen/logrus"

	"easypeasy_backend/internals/configs"
	"easypeasy_backend/internals/middlewares/logger"
)

const requestTimeout = 5 * time.Second

// RequestID sets X-Request-ID, bounds the request context and logs timing.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.WithField("reqid", id).Debugf("[REQ] %s %s status=%d dur=%s",
			c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}

// recoverPanics turns a panic into a 500 via the app ErrorHandler and logs
// the value with the request id so it can be matched to the access log.
func recoverPanics() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.WithFields(log.Fields{
				"reqid":  c.Locals("reqid"),
				"method": c.Method(),
				"path":   c.Path(),
			}).Errorf("[PANIC] %v", e)
		},
	})
}

func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(recoverPanics())
	app.Use(RequestID())
	app.Use(logger.LoggerMiddleware(cfg.Timezone))
	app.Use(CorsMiddleware(cfg.CorsOrigins))
}
