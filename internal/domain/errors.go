package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAmbiguousTaskID = errors.New("task id prefix matches more than one task")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidDate     = errors.New("invalid date (want YYYY-MM-DD)")
	ErrEndBeforeStart  = errors.New("end date is before start date")
	ErrInvalidPriority = errors.New("invalid priority (want low, medium or high)")
	ErrConfigExists    = errors.New("config file already exists")
	ErrUnknownBackend  = errors.New("unknown store backend")
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrNoDropTarget    = errors.New("drop target not specified")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrEmptyPlan       = errors.New("plan file contains no tasks")
)
