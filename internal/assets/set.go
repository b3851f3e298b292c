package assets

import (
	"fmt"
	"sync"
)

// Snapshot is a point-in-time view of the loaded template bitmaps. A nil
// field means the asset has not loaded (or failed to).
type Snapshot struct {
	Mask    *Bitmap
	Pattern *Bitmap
	Stroke  *Bitmap
}

// Set holds the template bitmaps as they finish loading.
type Set struct {
	mu      sync.RWMutex
	mask    *Bitmap
	pattern *Bitmap
	stroke  *Bitmap
}

func NewSet() *Set { return &Set{} }

func (s *Set) Put(kind Kind, bmp *Bitmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case KindMask:
		s.mask = bmp
	case KindPattern:
		s.pattern = bmp
	case KindStroke:
		s.stroke = bmp
	default:
		return fmt.Errorf("%s is not a template asset", kind)
	}
	return nil
}

func (s *Set) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Mask: s.mask, Pattern: s.pattern, Stroke: s.stroke}
}

// Ready reports whether the mask has loaded.
func (s *Set) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask != nil
}
