package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "request_id"
)

// RequestLogger asigna un X-Request-ID y registra cada petición con zerolog.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(localRequestID, reqID)
		c.Set(headerRequestID, reqID)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int64("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}

// GetRequestID id de la petición en curso.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(localRequestID).(string)
	return s
}
