// Package middleware provides security middleware for Tech Manager.
// Request logging, security headers and endpoint rate limiting.
package middleware

import (
	"time"

	"github.com/balatechn/tech-manager/internal/security"
	"github.com/gofiber/fiber/v2"
)

// SecurityMiddleware provides centralized security functionality.
type SecurityMiddleware struct {
	logger *security.Logger
	config *security.SecurityConfig
}

// NewSecurityMiddleware creates a new security middleware instance.
func NewSecurityMiddleware(logger *security.Logger, config *security.SecurityConfig) *SecurityMiddleware {
	return &SecurityMiddleware{
		logger: logger,
		config: config,
	}
}

// RequestLogger logs every completed HTTP request as a structured JSON entry
// with method, path, status and latency.
func (sm *SecurityMiddleware) RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		sm.logger.HTTPRequest(
			c.Method(),
			c.Path(),
			status,
			time.Since(start).Milliseconds(),
			c.IP(),
			c.Get("User-Agent"),
		)

		return err
	}
}

// SecureHeaders sets standard security response headers on every request.
func (sm *SecurityMiddleware) SecureHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "same-origin")
		c.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")

		return c.Next()
	}
}

// RateLimit wraps a handler chain with a per-IP token bucket limit.
// Rejections are logged as security events and answered with 429.
func (sm *SecurityMiddleware) RateLimit(limiter *security.RateLimiter, endpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			sm.logger.SecurityEvent(
				security.EventRateLimitExceeded,
				"", "",
				c.IP(),
				c.Get("User-Agent"),
				map[string]any{"endpoint": endpoint},
			)

			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many requests, please try again later")
		}

		return c.Next()
	}
}
