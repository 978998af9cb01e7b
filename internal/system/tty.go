package system

// Logger is the component-tagged logger the console helpers report to.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

// HideCursor writes the ANSI hide-cursor sequence to the active VT.
func HideCursor() error { return writeVT(hideCursorSeq) }
func ShowCursor() error { return writeVT(showCursorSeq) }

// EnterGraphics prepares the console for a full-screen framebuffer image
// and returns the function that undoes it. Failures are logged, not
// returned: a cover on a console with a blinking cursor is still a cover.
func EnterGraphics(l Logger) (restore func()) {
	logResult(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
	logResult(l, HideCursor(), "cursor hidden", "hide cursor failed")
	return func() {
		logResult(l, ShowCursor(), "cursor shown", "show cursor failed")
		logResult(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
	}
}

func logResult(l Logger, err error, ok, failed string) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
		return
	}
	l.Infof("tty", "%s", ok)
}
