package models

import "errors"

// Domain specific errors for the shell and the API.
var (
	ErrNotFound                = errors.New("requested item not found")
	ErrBadRequest              = errors.New("bad request")
	ErrValidation              = errors.New("validation failed")
	ErrInvalidPanel            = errors.New("unknown header panel")
	ErrNoActiveSchedule        = errors.New("no active capture schedule found")
	ErrMultipleActiveSchedules = errors.New("multiple active capture schedules found")
)
