package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are wrong or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidRole is returned when an invalid role value is provided
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidManager is returned when a manager assignment is rejected
	ErrInvalidManager = errors.New("manager must be LEADER or ADMIN")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPoints is returned when a point award is out of range
	ErrInvalidPoints = errors.New("pontos must be an integer between 1 and 50")
)
