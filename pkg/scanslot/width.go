package scanslot

import "fmt"

// Width is the byte size of a scanned value.
type Width uint8

const (
	Unset    Width = 0
	Byte     Width = 1
	HalfWord Width = 2
	Word     Width = 4
)

func (w Width) Valid() bool {
	return w == Byte || w == HalfWord || w == Word
}

// Mask returns the largest value representable in w.
func (w Width) Mask() uint32 {
	switch w {
	case Byte:
		return 0xff
	case HalfWord:
		return 0xffff
	case Word:
		return 0xffffffff
	}
	return 0
}

func (w Width) String() string {
	if w == Unset {
		return "unset"
	}
	return fmt.Sprintf("%d", uint8(w))
}
