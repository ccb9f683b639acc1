package retained

// ============================================================================
// Event Types
// ============================================================================

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is a bitmask of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key identifies the logical editing keys the editor handles itself.
// Printable input arrives as KeyEvent.Char instead.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
)

// KeyEvent represents keyboard events delivered to an editor.
type KeyEvent struct {
	// Logical key for navigation and editing keys.
	Key Key

	// For character input, the typed rune (0 otherwise).
	Char rune

	// Modifier keys held during the event.
	Modifiers Modifiers

	// True if this is a repeat event (key held down).
	Repeat bool
}

// MouseEvent represents pointer events in editor-local coordinates.
type MouseEvent struct {
	// Local coordinates (relative to the editor's top-left).
	X, Y float32

	// Which button triggered the event.
	Button MouseButton

	// Modifier keys held during the event.
	Modifiers Modifiers

	// Click count for detecting double/triple clicks.
	ClickCount int
}
