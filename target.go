// Package textedit defines the text input target contract: a uniform
// capability that editable text widgets expose to OS input methods,
// on-screen keyboards and accessibility tooling.
//
// A Target lets input-method machinery query and mutate a widget's caret,
// selection and text geometry without knowing anything about the widget's
// internal representation. All indices are codepoint (rune) offsets, all
// rectangles are widget-local pixels, and every operation is total: out of
// range input is clamped, never rejected.
package textedit

// Range is a half-open interval [Start, End) over codepoint indices.
// An empty range (Start == End) means "no selection"; the caret position
// is meaningful instead.
type Range struct {
	Start, End int
}

// NewRange returns the range [start, end), normalized so Start <= End.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}.Normalized()
}

// EmptyRangeAt returns the empty range positioned at pos.
func EmptyRangeAt(pos int) Range {
	return Range{Start: pos, End: pos}
}

// Normalized returns the range with its endpoints ordered so Start <= End.
func (r Range) Normalized() Range {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Empty returns true if the range covers no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Length returns the number of characters covered by the range.
func (r Range) Length() int {
	r = r.Normalized()
	return r.End - r.Start
}

// Contains returns true if index i falls within [Start, End).
func (r Range) Contains(i int) bool {
	r = r.Normalized()
	return i >= r.Start && i < r.End
}

// Clamp constrains the range to [0, total], normalizing it first.
// A range lying entirely past the end collapses to [total, total].
func (r Range) Clamp(total int) Range {
	r = r.Normalized()
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Start > total {
		r.Start = total
	}
	if r.End < 0 {
		r.End = 0
	}
	if r.End > total {
		r.End = total
	}
	return r
}

// Shifted returns the range moved by delta characters.
func (r Range) Shifted(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Target is implemented by components that function as text editors.
//
// It gives different kinds of editable widget a uniform surface that
// OS-specific input methods, virtual keyboards and assistive tools can
// drive. Callers and implementations run on the same UI thread; no method
// blocks, and no method fails. Out-of-range indices and ranges are clamped
// to [0, TotalNumChars()].
type Target interface {
	// TextInputActive returns true if the target currently accepts input.
	// A text editor in read-only mode returns false.
	TextInputActive() bool

	// HighlightedRegion returns the extent of the selected text, or an
	// empty range if nothing is selected.
	HighlightedRegion() Range

	// SetHighlightedRegion sets the currently-selected region. The range
	// is clamped to the text bounds; it is never rejected.
	SetHighlightedRegion(r Range)

	// SetTemporaryUnderlining replaces the set of temporarily underlined
	// regions wholesale. Input methods use these to mark in-progress
	// composition spans; they carry no text mutation. The previous set is
	// discarded atomically so observers never see a partial update.
	SetTemporaryUnderlining(regions []Range)

	// TextInRange returns the codepoints covered by the given range,
	// clamped to the text bounds. An empty range yields an empty string.
	TextInRange(r Range) string

	// InsertTextAtCaret inserts text at the caret. If a selection is
	// active it is replaced, and the selection collapses to a caret
	// placed after the inserted text.
	InsertTextAtCaret(text string)

	// CaretPosition returns the current index of the caret,
	// in [0, TotalNumChars()].
	CaretPosition() int

	// CaretRectForIndex returns the bounding box of the caret when placed
	// at the given character index, in widget-local coordinates.
	// Out-of-range indices are clamped to the nearest valid position.
	CaretRectForIndex(index int) Rect

	// TotalNumChars returns the codepoint count of the current text.
	// The count is live, never cached.
	TotalNumChars() int

	// CharIndexForPoint returns the character index closest to the given
	// widget-local point. This is where the caret lands after a click.
	// Points outside the rendered text still map to a valid index.
	CharIndexForPoint(p Point) int

	// TextBounds returns rectangles covering the glyphs in the given
	// range, one per visual line, in widget-local coordinates. The
	// rectangles may extend beyond the widget's visible bounds when
	// wrapping is disabled and the text overflows.
	TextBounds(r Range) RectList

	// KeyboardType returns the target's preference for an on-screen
	// keyboard layout. Purely advisory; the platform may ignore it.
	KeyboardType() VirtualKeyboardType
}

// CaretRect returns the caret's current bounding box, relative to the
// target's origin. Equivalent to mapping the caret position through
// CaretRectForIndex; defined here once so implementations only provide
// the per-index query.
func CaretRect(t Target) Rect {
	return t.CaretRectForIndex(t.CaretPosition())
}

// VirtualKeyboardType is a target's advisory preference for the kind of
// on-screen keyboard the platform should present.
type VirtualKeyboardType uint8

const (
	// TextKeyboard is the general-purpose layout and the default when a
	// target expresses no preference.
	TextKeyboard VirtualKeyboardType = iota
	NumericKeyboard
	DecimalKeyboard
	URLKeyboard
	EmailKeyboard
	PhoneKeyboard
	PasswordKeyboard
)

var keyboardTypeNames = [...]string{
	TextKeyboard:     "text",
	NumericKeyboard:  "numeric",
	DecimalKeyboard:  "decimal",
	URLKeyboard:      "url",
	EmailKeyboard:    "email",
	PhoneKeyboard:    "phone",
	PasswordKeyboard: "password",
}

func (k VirtualKeyboardType) String() string {
	if int(k) < len(keyboardTypeNames) {
		return keyboardTypeNames[k]
	}
	return "text"
}

// MarshalText implements encoding.TextMarshaler so keyboard types can be
// written to config files by name.
func (k VirtualKeyboardType) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall
// back to the general text keyboard.
func (k *VirtualKeyboardType) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range keyboardTypeNames {
		if n == name {
			*k = VirtualKeyboardType(i)
			return nil
		}
	}
	*k = TextKeyboard
	return nil
}
