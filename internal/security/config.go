// Package security provides centralized security configuration and utilities.
package security

import (
	"time"
)

// SecurityConfig holds all security-related configuration values.
// These values are tuned based on OWASP ASVS and NIST guidelines.
type SecurityConfig struct {
	// Secure passcode storage
	BcryptCost int // Cost factor for bcrypt hashing (recommended: 12)

	// Brute force protection
	LoginRateLimit int // Max login attempts per minute per IP

	// Input validation limits
	MaxTitleLength       int // Maximum characters in a task title
	MaxDescriptionLength int // Maximum characters in a task description
	MaxRemarkLength      int // Maximum characters in a single remark
	MaxIssuesSize        int // Maximum bytes of critical-issues text per report

	// Rate limiting (requests per time window)
	RateLimitSubmit int // Report submission endpoint, per hour
	RateLimitStatus int // Task status change endpoint, per minute

	// Housekeeping
	LimiterCleanupInterval time.Duration // How often idle rate-limit buckets are dropped
}

// DefaultSecurityConfig returns security configuration with recommended defaults.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		// Bcrypt cost 12 = 2^12 = 4096 iterations
		BcryptCost: 12,

		// Brute force protection
		LoginRateLimit: 5, // per minute

		// Input validation limits
		MaxTitleLength:       200,
		MaxDescriptionLength: 2000,
		MaxRemarkLength:      1000,
		MaxIssuesSize:        16 * 1024,

		// Rate limits
		RateLimitSubmit: 10, // per hour
		RateLimitStatus: 30, // per minute

		LimiterCleanupInterval: 10 * time.Minute,
	}
}
