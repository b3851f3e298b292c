package state

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rook-computer/adcanvas/internal/render"
)

const (
	// ColorHistoryKey is the KVStore key holding the recent colors.
	ColorHistoryKey = "colors"
	// ColorHistorySize is the number of recent colors kept.
	ColorHistorySize = 3
)

// ColorHistory tracks the most recently picked colors, most recent first.
type ColorHistory struct {
	kv KVStore

	mu     sync.RWMutex
	colors []string
}

// LoadColorHistory reads the persisted list once. Entries that are not valid
// colors are dropped.
func LoadColorHistory(kv KVStore) (*ColorHistory, error) {
	h := &ColorHistory{kv: kv}
	raw, ok, err := kv.Get(ColorHistoryKey)
	if err != nil {
		return h, fmt.Errorf("load color history: %w", err)
	}
	if !ok || raw == "" {
		return h, nil
	}
	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return h, fmt.Errorf("load color history: %w", err)
	}
	seen := make(map[string]bool, len(stored))
	for _, c := range stored {
		normalized, err := render.NormalizeHexColor(c)
		if err != nil || seen[normalized] {
			continue
		}
		seen[normalized] = true
		h.colors = append(h.colors, normalized)
		if len(h.colors) == ColorHistorySize {
			break
		}
	}
	return h, nil
}

// Colors returns a copy of the list, most recent first.
func (h *ColorHistory) Colors() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.colors...)
}

// Latest returns the most recent color.
func (h *ColorHistory) Latest() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.colors) == 0 {
		return "", false
	}
	return h.colors[0], true
}

// Push records hex as the most recent color and persists the list. A color
// already present moves to the front.
func (h *ColorHistory) Push(hex string) ([]string, error) {
	normalized, err := render.NormalizeHexColor(hex)
	if err != nil {
		return h.Colors(), err
	}

	h.mu.Lock()
	h.colors = pushFront(h.colors, normalized)
	if len(h.colors) > ColorHistorySize {
		h.colors = h.colors[:ColorHistorySize]
	}
	out := append([]string(nil), h.colors...)
	h.mu.Unlock()

	data, err := json.Marshal(out)
	if err != nil {
		return out, err
	}
	if err := h.kv.Set(ColorHistoryKey, string(data)); err != nil {
		return out, fmt.Errorf("save color history: %w", err)
	}
	return out, nil
}

func pushFront(list []string, c string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, c)
	for _, existing := range list {
		if existing != c {
			out = append(out, existing)
		}
	}
	return out
}
