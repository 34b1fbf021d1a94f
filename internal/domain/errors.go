package domain

import "errors"

// Dashboard and membership errors
var (
	ErrDashboardNotFound = errors.New("dashboard not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrAlreadyMember     = errors.New("user already has access to this dashboard")
	ErrOwnerProtected    = errors.New("the dashboard owner membership cannot be modified")
	ErrAuthRequired      = errors.New("authentication required")
	ErrAccessDenied      = errors.New("access denied")
	ErrEditDenied        = errors.New("edit permission denied")
	ErrOwnerOnly         = errors.New("only the owner can perform this action")
)

// Todo and tag errors
var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagExists        = errors.New("tag with this name already exists in this dashboard")
	ErrAlreadyCompleted = errors.New("todo is already completed")
	ErrAlreadyPending   = errors.New("todo is already pending")
)

// ValidationError marks bad input shape or value. The request boundary
// translates it to a 400 response with the carried message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
