package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/matching"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
)

type localKey int

const (
	localIdentity localKey = iota
)

// Identity is the caller as asserted by the upstream gateway.
type Identity struct {
	UserID string
	Role   string
}

func accessLog(logger *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		logger.Info("http request",
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

// identify reads the caller identity headers. Requests without a user id are rejected.
func identify() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := Identity{
			UserID: strings.TrimSpace(c.Get(HeaderUserID)),
			Role:   strings.ToLower(strings.TrimSpace(c.Get(HeaderUserRole))),
		}
		if id.UserID == "" {
			return NewAppError(fiber.StatusUnauthorized, messageUnauthorized, nil)
		}

		c.Locals(localIdentity, id)
		return c.Next()
	}
}

func requireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if identity(c).Role != role {
			return matching.ErrForbidden
		}
		return c.Next()
	}
}

func identity(c fiber.Ctx) Identity {
	id, _ := c.Locals(localIdentity).(Identity)
	return id
}
