package utils

import "time"

const (
	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Reservation Constants
	ReservationNumberPrefix   = "RSV-"
	ReservationNumberLength   = 8
	ReservationNumberAttempts = 5
	MaxRentalDays             = 90
	MaxAddOnsPerReservation   = 10
	MinDailyRate              = 1.0
	MaxDailyRate              = 10000.0

	// Locking
	CarLockTTL           = 10 * time.Second
	CarLockRetryInterval = 50 * time.Millisecond
	CarLockMaxWait       = 2 * time.Second

	// Cache
	ReservationCacheTTL = 15 * time.Minute
	CatalogCacheTTL     = 30 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrCarUnavailable   = "car is not available for the chosen dates"
)

// Context keys
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)
