package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// MaxBodySize bounds uploads and resume payloads, which may embed a photo.
const MaxBodySize = 10 << 20

// NewApp builds the fiber app with the JSON error handler, panic recovery
// and every route registered.
func NewApp(h *Handler, log zerolog.Logger) *fiber.App {
	onError := ErrorHandler(log)
	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		BodyLimit:             MaxBodySize,
		ErrorHandler:          onError,
		DisableStartupMessage: true,
	})
	app.Use(requestLogger(log, onError))
	app.Use(recover.New())
	h.Register(app)
	return app
}

// requestLogger writes the error response itself so the logged status is
// the one the client sees.
func requestLogger(log zerolog.Logger, onError fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			if herr := onError(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Msg("request")
		return nil
	}
}
