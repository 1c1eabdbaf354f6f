package service

import (
	"errors"
	"memscan/pkg/proc"
	"memscan/pkg/scanslot"

	e "memscan/error"
)

// ErrorClass groups command errors for transports that report a status
// alongside the message.
type ErrorClass int

const (
	ClassInternal ErrorClass = iota
	ClassInvalid
	ClassConflict
	ClassNotFound
	ClassUnavailable
)

func Classify(err error) ErrorClass {
	switch {
	case errors.Is(err, e.InvalidArguments),
		errors.Is(err, scanslot.ErrInvalidWidth),
		errors.Is(err, scanslot.ErrValueOutOfRange),
		errors.Is(err, scanslot.ErrInvalidRange),
		errors.Is(err, scanslot.ErrRangeRequired),
		errors.Is(err, scanslot.ErrSlotOutOfRange),
		errors.Is(err, proc.ErrInvalidSize):
		return ClassInvalid
	case errors.Is(err, scanslot.ErrWidthMismatch):
		return ClassConflict
	case errors.Is(err, e.CommandNotFound), errors.Is(err, e.RegionNotFound):
		return ClassNotFound
	case errors.Is(err, proc.ErrIncompleteRead):
		return ClassUnavailable
	}
	return ClassInternal
}
