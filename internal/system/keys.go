package system

// Key codes from linux/input-event-codes.h.
const (
	KeyEsc uint16 = 1
	KeyQ   uint16 = 16
	KeyF4  uint16 = 62
)

// ParseKey maps a key name used on the command line to its code.
func ParseKey(name string) (uint16, bool) {
	switch name {
	case "esc", "ESC", "escape":
		return KeyEsc, true
	case "q", "Q":
		return KeyQ, true
	case "f4", "F4":
		return KeyF4, true
	}
	return 0, false
}
