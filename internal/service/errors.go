package service

import "errors"

var (
	ErrNotLoaded       = errors.New("state not loaded yet")
	ErrPersistence     = errors.New("failed to persist change")
	ErrEmptyValue      = errors.New("value must not be empty")
	ErrInvalidUnitType = errors.New("unit type must be metric or imperial")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyComment    = errors.New("comment must not be empty")
)
