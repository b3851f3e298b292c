package assets

import "fmt"

// Kind identifies an asset slot.
type Kind int

const (
	KindMask Kind = iota
	KindPattern
	KindStroke
	KindPhoto
)

func (k Kind) String() string {
	switch k {
	case KindMask:
		return "mask"
	case KindPattern:
		return "pattern"
	case KindStroke:
		return "stroke"
	case KindPhoto:
		return "photo"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one asynchronous load.
type Result struct {
	Kind   Kind
	Source string
	Bitmap *Bitmap
	Err    error
}
