// Package system wraps the bits of the host the kiosk touches directly: the
// virtual console, evdev keyboards and network interfaces.
package system

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Console takes over the virtual terminal while the canvas is on screen.
type Console struct {
	Logger Logger

	// overridable in tests
	setGraphics func() error
	restoreText func() error
	hideCursor  func() error
	showCursor  func() error
}

// Acquire switches to graphics mode and hides the cursor. Failures are logged
// and otherwise ignored; the returned func undoes both steps.
func (c Console) Acquire() (release func()) {
	setGraphics := pick(c.setGraphics, SetGraphicsMode)
	restoreText := pick(c.restoreText, RestoreTextMode)
	hideCursor := pick(c.hideCursor, HideCursor)
	showCursor := pick(c.showCursor, ShowCursor)

	c.logResult(setGraphics(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
	c.logResult(hideCursor(), "cursor hidden", "hide cursor failed")
	return func() {
		c.logResult(showCursor(), "cursor shown", "show cursor failed")
		c.logResult(restoreText(), "KD_TEXT set", "KD_TEXT failed")
	}
}

func (c Console) logResult(err error, ok, failed string) {
	if c.Logger == nil {
		return
	}
	if err != nil {
		c.Logger.Errorf("tty", "%s: %v", failed, err)
		return
	}
	c.Logger.Infof("tty", "%s", ok)
}

func pick(fn, fallback func() error) func() error {
	if fn != nil {
		return fn
	}
	return fallback
}
