package http

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eventkampus/api/internal/config"
	"github.com/eventkampus/api/internal/persistence"
	apperrors "github.com/eventkampus/api/pkg/util"
)

// RateLimiter returns a fixed-window limiter backed by Redis, keyed by
// client IP and path. It fails open when Redis is unreachable so auth
// availability never depends on the cache.
func RateLimiter(rdb *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || rdb == nil || rdb.Client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.IP(), c.Path())
		count, err := rdb.Client.Incr(c.UserContext(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rdb.Client.Expire(c.UserContext(), key, cfg.Window()).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(cfg.Requests) {
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
