package entities

import "errors"

// Domain errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidStatus   = errors.New("invalid meeting status")
)
