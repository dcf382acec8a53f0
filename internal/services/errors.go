package services

import "errors"

// Service errors. They are wrapped as the cause of typed application errors.
var (
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrStartAfterEnd    = errors.New("start is after end")
	ErrOutOfBounds      = errors.New("range outside dataset bounds")
	ErrUnknownSummary   = errors.New("unknown summary")
)
