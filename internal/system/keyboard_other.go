//go:build !linux

package system

import "context"

func WatchKeys(ctx context.Context, logger Logger, bindings KeyBindings) {
	if logger != nil && len(bindings) > 0 {
		logger.Infof("input", "key bindings are only supported on linux")
	}
}
