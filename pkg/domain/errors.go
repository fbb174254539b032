package domain

import "errors"

// ErrProjectNotFound is returned when a project ID cannot be found in a store.
var ErrProjectNotFound = errors.New("project not found")

// ErrPersistence wraps every read, parse or decode failure of a persisted project.
var ErrPersistence = errors.New("persistence error")
