package retained

import (
	"sync"
	"unicode"

	"github.com/agiangrant/textedit"
	"github.com/agiangrant/textedit/internal/textmetrics"
)

// caretWidth is the width in pixels of the caret glyph rectangle.
const caretWidth = 2

// Clipboard abstracts the platform clipboard for cut/copy/paste.
type Clipboard interface {
	Get() string
	Set(text string)
}

// Editor is an editable text widget: a single-line field or a multiline
// area. It implements textedit.Target, so platform input methods,
// on-screen keyboards and assistive tools can drive it through the
// contract without knowing its internals.
//
// All methods are called on the UI thread; none block.
type Editor struct {
	mu sync.RWMutex

	buf *Buffer

	// Geometry, in widget-local pixels.
	width, height float32
	padding       [4]float32 // top, right, bottom, left
	fontSize      float32
	scrollY       float32

	// WordWrap enables soft wrapping in multiline editors.
	wordWrap bool

	measurer textmetrics.Measurer

	clipboard Clipboard

	// Keyboard preferences. keyboardSet marks an explicit per-field choice.
	keyboard         textedit.VirtualKeyboardType
	keyboardSet      bool
	defaultKeyboard  textedit.VirtualKeyboardType
	passwordKeyboard textedit.VirtualKeyboardType

	// Drag selection state.
	dragging bool
}

var _ textedit.Target = (*Editor)(nil)

// NewTextField creates a single-line text input.
func NewTextField(placeholder string) *Editor {
	return newEditor(placeholder, false)
}

// NewTextArea creates a multiline text input.
func NewTextArea(placeholder string) *Editor {
	return newEditor(placeholder, true)
}

func newEditor(placeholder string, multiline bool) *Editor {
	buf := NewBuffer()
	buf.SetPlaceholder(placeholder)
	buf.SetMultiline(multiline)

	return &Editor{
		buf:              buf,
		fontSize:         14,
		padding:          [4]float32{8, 12, 8, 12},
		wordWrap:         true,
		measurer:         textmetrics.Default(),
		defaultKeyboard:  textedit.TextKeyboard,
		passwordKeyboard: textedit.PasswordKeyboard,
	}
}

// Buffer returns the editor's underlying text buffer.
func (e *Editor) Buffer() *Buffer {
	return e.buf
}

// SetSize sets the widget's size in pixels.
func (e *Editor) SetSize(width, height float32) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width = width
	e.height = height
	return e
}

// SetPadding sets the content padding (top, right, bottom, left).
func (e *Editor) SetPadding(top, right, bottom, left float32) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.padding = [4]float32{top, right, bottom, left}
	return e
}

// SetFontSize sets the font size in pixels.
func (e *Editor) SetFontSize(size float32) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fontSize = size
	return e
}

// SetMeasurer attaches the host toolkit's text measurement backend.
func (e *Editor) SetMeasurer(m textmetrics.Measurer) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.measurer = m
	return e
}

// SetWordWrap enables or disables soft wrapping in multiline editors.
func (e *Editor) SetWordWrap(wrap bool) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.wordWrap = wrap
	return e
}

// SetClipboard attaches a platform clipboard for cut/copy/paste keys.
func (e *Editor) SetClipboard(c Clipboard) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clipboard = c
	return e
}

// SetKeyboardType sets an explicit on-screen keyboard preference for
// this field, overriding the configured defaults.
func (e *Editor) SetKeyboardType(k textedit.VirtualKeyboardType) *Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyboard = k
	e.keyboardSet = true
	return e
}

// ApplyOptions applies toolkit-level input settings to this editor.
func (e *Editor) ApplyOptions(opts textedit.Options) {
	e.buf.SetBlinkInterval(opts.BlinkInterval())
	e.buf.SetMaskRune(opts.MaskRune())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.wordWrap = opts.WordWrap
	e.defaultKeyboard = opts.Keyboard.Default
	e.passwordKeyboard = opts.Keyboard.Password
}

// ============================================================================
// textedit.Target implementation
// ============================================================================

// TextInputActive returns true unless the editor is read-only.
func (e *Editor) TextInputActive() bool {
	return !e.buf.IsReadOnly()
}

// HighlightedRegion returns the selected region, or an empty range at the
// caret when nothing is selected.
func (e *Editor) HighlightedRegion() textedit.Range {
	return e.buf.Selection()
}

// SetHighlightedRegion sets the selected region, clamped to the text.
func (e *Editor) SetHighlightedRegion(r textedit.Range) {
	e.buf.SetSelection(r)
}

// SetTemporaryUnderlining replaces the composition underline set.
func (e *Editor) SetTemporaryUnderlining(regions []textedit.Range) {
	e.buf.SetUnderlines(regions)
}

// TextInRange returns the codepoints covered by the given range.
func (e *Editor) TextInRange(r textedit.Range) string {
	return e.buf.TextInRange(r)
}

// InsertTextAtCaret inserts text at the caret, replacing any selection.
func (e *Editor) InsertTextAtCaret(text string) {
	e.buf.Insert(text)
	e.buf.ResetBlink()
}

// CaretPosition returns the current caret index.
func (e *Editor) CaretPosition() int {
	return e.buf.Caret()
}

// CaretRectForIndex returns the caret's bounding box when placed at the
// given index. Out-of-range indices clamp to the nearest valid position.
func (e *Editor) CaretRectForIndex(index int) textedit.Rect {
	e.mu.RLock()
	defer e.mu.RUnlock()

	total := e.buf.Len()
	if index < 0 {
		index = 0
	}
	if index > total {
		index = total
	}

	lines := e.visualLines()
	row, colX := caretRowCol(lines, index, e.fontSize, e.measurer)
	lineHeight := e.measurer.LineHeight(e.fontSize)

	return textedit.Rect{
		X:      e.padding[3] + colX,
		Y:      e.padding[0] + float32(row)*lineHeight - e.scrollY,
		Width:  caretWidth,
		Height: lineHeight,
	}
}

// TotalNumChars returns the live codepoint count of the text.
func (e *Editor) TotalNumChars() int {
	return e.buf.Len()
}

// CharIndexForPoint returns the character index closest to the given
// widget-local point. Points outside the text extent clamp to the nearest
// valid index.
func (e *Editor) CharIndexForPoint(p textedit.Point) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lines := e.visualLines()
	lineHeight := e.measurer.LineHeight(e.fontSize)

	x := p.X - e.padding[3]
	y := p.Y - e.padding[0] + e.scrollY
	if x < 0 {
		x = 0
	}

	row := 0
	if y > 0 {
		row = int(y / lineHeight)
	}

	return indexFromPosition(lines, row, x, e.fontSize, e.measurer)
}

// TextBounds returns one rectangle per visual line covering the glyphs in
// the given range. An empty range yields an empty list.
func (e *Editor) TextBounds(r textedit.Range) textedit.RectList {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r = r.Clamp(e.buf.Len())
	if r.Empty() {
		return nil
	}

	lines := e.visualLines()
	lineHeight := e.measurer.LineHeight(e.fontSize)

	var out textedit.RectList
	for row, line := range lines {
		start := max(r.Start, line.Start)
		end := min(r.End, line.End)
		if start >= end {
			continue
		}
		x0 := e.measurer.Advance(line.Text, start-line.Start, e.fontSize)
		x1 := e.measurer.Advance(line.Text, end-line.Start, e.fontSize)
		out = append(out, textedit.Rect{
			X:      e.padding[3] + x0,
			Y:      e.padding[0] + float32(row)*lineHeight - e.scrollY,
			Width:  x1 - x0,
			Height: lineHeight,
		})
	}
	return out
}

// KeyboardType returns the field's on-screen keyboard preference.
// Password fields always advertise the password layout.
func (e *Editor) KeyboardType() textedit.VirtualKeyboardType {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.buf.IsPassword() {
		return e.passwordKeyboard
	}
	if e.keyboardSet {
		return e.keyboard
	}
	return e.defaultKeyboard
}

// visualLines wraps the display text into visual lines (must hold mu).
// Password masking is applied before layout so geometry matches what is
// drawn; the mask preserves codepoint count, so indices line up.
func (e *Editor) visualLines() []WrappedLine {
	wrapWidth := float32(0)
	if e.buf.Multiline() && e.wordWrap {
		wrapWidth = e.width - e.padding[1] - e.padding[3]
	}
	return WrapText(e.buf.DisplayText(), wrapWidth, e.fontSize, e.measurer)
}

// ============================================================================
// User input
// ============================================================================

// HandleKeyDown processes navigation and editing keys.
func (e *Editor) HandleKeyDown(ev KeyEvent) {
	extend := ev.Modifiers.Shift()
	wordJump := ev.Modifiers.Alt()   // Option on macOS
	lineJump := ev.Modifiers.Super() // Cmd on macOS

	switch ev.Key {
	case KeyLeft:
		if lineJump {
			e.buf.MoveToLineStart(extend)
		} else if wordJump {
			e.buf.MoveWord(false, extend)
		} else {
			e.buf.MoveCaret(-1, extend)
		}

	case KeyRight:
		if lineJump {
			e.buf.MoveToLineEnd(extend)
		} else if wordJump {
			e.buf.MoveWord(true, extend)
		} else {
			e.buf.MoveCaret(1, extend)
		}

	case KeyUp:
		e.moveCaretVertical(-1, extend)

	case KeyDown:
		e.moveCaretVertical(1, extend)

	case KeyHome:
		if lineJump || !e.buf.Multiline() {
			e.buf.MoveToStart(extend)
		} else {
			e.buf.MoveToLineStart(extend)
		}

	case KeyEnd:
		if lineJump || !e.buf.Multiline() {
			e.buf.MoveToEnd(extend)
		} else {
			e.buf.MoveToLineEnd(extend)
		}

	case KeyBackspace:
		if wordJump {
			e.buf.DeleteWord(false)
		} else {
			e.buf.Delete(-1)
		}

	case KeyDelete:
		if wordJump {
			e.buf.DeleteWord(true)
		} else {
			e.buf.Delete(1)
		}

	case KeyEnter:
		if e.buf.Multiline() {
			e.buf.Insert("\n")
		}
		// Single-line Enter submits; the app handles that.

	case KeyTab:
		if e.buf.Multiline() {
			e.buf.Insert("\t")
		}

	case KeyNone:
		e.handleShortcut(ev)
	}

	e.buf.ResetBlink()
}

// handleShortcut processes modifier-key editing commands.
func (e *Editor) handleShortcut(ev KeyEvent) {
	if !ev.Modifiers.Super() && !ev.Modifiers.Ctrl() {
		return
	}

	e.mu.RLock()
	clip := e.clipboard
	e.mu.RUnlock()

	switch ev.Char {
	case 'a':
		e.buf.SelectAll()

	case 'c':
		// No copy in password mode.
		if clip != nil && !e.buf.IsPassword() {
			if text := e.buf.SelectedText(); text != "" {
				clip.Set(text)
			}
		}

	case 'x':
		if text := e.buf.SelectedText(); text != "" {
			if clip != nil && !e.buf.IsPassword() {
				clip.Set(text)
			}
			e.buf.Delete(0) // Delete selection
		}

	case 'v':
		if clip != nil {
			if text := clip.Get(); text != "" {
				e.buf.Insert(text)
			}
		}

	case 'z':
		if ev.Modifiers.Shift() {
			e.buf.Redo()
		} else {
			e.buf.Undo()
		}
	}
}

// HandleKeyPress processes character input from ordinary typing.
func (e *Editor) HandleKeyPress(ev KeyEvent) {
	if ev.Modifiers.Super() || ev.Modifiers.Ctrl() {
		return
	}
	if ev.Char == 0 || !unicode.IsPrint(ev.Char) {
		return
	}

	e.buf.Insert(string(ev.Char))
	e.buf.ResetBlink()
}

// HandleMouseDown places the caret or starts a drag selection.
// Double clicks select the word, triple clicks the line.
func (e *Editor) HandleMouseDown(ev MouseEvent) {
	pos := e.CharIndexForPoint(textedit.Point{X: ev.X, Y: ev.Y})

	switch {
	case ev.ClickCount >= 3:
		e.buf.SelectLineAt(pos)

	case ev.ClickCount == 2:
		e.buf.SelectWordAt(pos)

	case ev.Modifiers.Shift():
		e.buf.Extend(pos)

	default:
		e.buf.SetCaret(pos)
	}

	e.mu.Lock()
	e.dragging = ev.ClickCount <= 1
	e.mu.Unlock()

	e.buf.ResetBlink()
}

// HandleMouseMove extends the selection while a drag is in progress.
func (e *Editor) HandleMouseMove(ev MouseEvent) {
	e.mu.RLock()
	dragging := e.dragging
	e.mu.RUnlock()
	if !dragging {
		return
	}

	pos := e.CharIndexForPoint(textedit.Point{X: ev.X, Y: ev.Y})
	e.buf.Extend(pos)
	e.buf.ResetBlink()
}

// HandleMouseUp ends a drag selection.
func (e *Editor) HandleMouseUp(ev MouseEvent) {
	e.mu.Lock()
	e.dragging = false
	e.mu.Unlock()
}

// HandleMouseWheel scrolls a multiline editor vertically.
func (e *Editor) HandleMouseWheel(deltaY float32) {
	if !e.buf.Multiline() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	lines := e.visualLines()
	lineHeight := e.measurer.LineHeight(e.fontSize)
	contentHeight := e.height - e.padding[0] - e.padding[2]

	maxScroll := float32(len(lines))*lineHeight - contentHeight
	if maxScroll < 0 {
		maxScroll = 0
	}

	e.scrollY -= deltaY
	if e.scrollY < 0 {
		e.scrollY = 0
	}
	if e.scrollY > maxScroll {
		e.scrollY = maxScroll
	}
}

// moveCaretVertical moves the caret between visual lines, falling back to
// start/end of text for single-line editors.
func (e *Editor) moveCaretVertical(delta int, extend bool) {
	if !e.buf.Multiline() {
		if delta < 0 {
			e.buf.MoveToStart(extend)
		} else {
			e.buf.MoveToEnd(extend)
		}
		return
	}

	e.mu.RLock()
	lines := e.visualLines()
	fontSize := e.fontSize
	m := e.measurer
	e.mu.RUnlock()

	newPos := moveVertical(lines, e.buf.Caret(), delta, fontSize, m, e.buf.Len())
	if extend {
		e.buf.Extend(newPos)
	} else {
		e.buf.SetCaret(newPos)
	}
}
