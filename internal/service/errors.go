package service

import "errors"

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrAmbiguousTrip    = errors.New("trip reference is ambiguous")
	ErrTripExists       = errors.New("trip name already in use")
	ErrInvalidShareCode = errors.New("invalid share code")
	ErrDayOutOfRange    = errors.New("day out of range")
	ErrEntryOutOfRange  = errors.New("entry out of range")
)
