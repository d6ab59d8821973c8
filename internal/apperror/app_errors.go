package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrConcurrentUpdate  = errors.New("game was updated concurrently")
	ErrStorageNotDefined = errors.New("unknown storage driver")
)
