package system

import (
	"encoding/binary"
	"fmt"
)

// Key is a Linux input-event-codes.h key code.
type Key uint16

const (
	KeyF4 Key = 62
	KeyF5 Key = 63
	KeyF6 Key = 64
)

func (k Key) String() string {
	switch k {
	case KeyF4:
		return "F4"
	case KeyF5:
		return "F5"
	case KeyF6:
		return "F6"
	default:
		return fmt.Sprintf("key(%d)", uint16(k))
	}
}

// KeyBindings maps a key to the action run when it is pressed.
type KeyBindings map[Key]func()

const evKey = 0x01

// parseKeyPresses decodes a buffer of input_event records and returns the
// codes of keys that went down. tvSize is the size of struct timeval on the
// running arch; an input_event is timeval + u16 type + u16 code + s32 value.
func parseKeyPresses(buf []byte, tvSize int) []Key {
	eventSize := tvSize + 2 + 2 + 4
	var keys []Key
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ == evKey && value == 1 {
			keys = append(keys, Key(code))
		}
	}
	return keys
}
