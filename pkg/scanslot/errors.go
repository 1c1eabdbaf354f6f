package scanslot

import "errors"

var (
	ErrInvalidWidth     = errors.New("invalid scan width, expected 1, 2 or 4")
	ErrWidthMismatch    = errors.New("scan width does not match slot, clear the slot first")
	ErrCorruptSlotState = errors.New("slot holds more hits than its capacity")
	ErrSlotOutOfRange   = errors.New("slot index out of range")
	ErrRangeRequired    = errors.New("an address range is required for a fresh scan")
	ErrInvalidRange     = errors.New("invalid address range")
	ErrValueOutOfRange  = errors.New("search value does not fit in scan width")
)
