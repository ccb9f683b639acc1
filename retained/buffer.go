// Package retained provides the toolkit's editable text widgets. Editor is
// the reference implementation of the textedit.Target contract; Buffer is
// the storage and caret/selection engine underneath it.
package retained

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/agiangrant/textedit"
)

// undoState captures a snapshot of buffer state for undo/redo.
type undoState struct {
	content []rune
	caret   int
	anchor  int
}

// Buffer manages editable text content with caret and selection.
// Content is stored as runes so every index is a codepoint offset, the
// unit the textedit contract is defined in.
//
// The invariants the contract requires hold at all times:
// 0 <= caret <= len(content), and the selection is always a subrange of
// the content, re-clamped whenever the text shrinks.
type Buffer struct {
	mu sync.RWMutex

	content []rune

	// Caret position (index into content, 0 = before first char).
	caret int

	// Selection anchor: where the selection started. anchor == caret
	// means no selection.
	anchor int

	// Temporary underline regions set by the input method while a
	// composition is in progress. Replaced wholesale, never edited.
	underlines []textedit.Range

	// Caret blink state
	caretVisible    bool
	lastBlinkToggle time.Time
	blinkInterval   time.Duration

	// Configuration
	multiline   bool
	maxLength   int // 0 = no limit
	placeholder string

	// Password mode
	password bool
	maskRune rune

	// Read-only mode: selection and copying allowed, editing rejected.
	readOnly bool

	// Undo/Redo stacks
	undoStack []undoState
	redoStack []undoState
	maxUndo   int // 0 = default 100

	// Callbacks
	onChange func(text string)
}

// NewBuffer creates an empty text buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		content:         make([]rune, 0, 64),
		caretVisible:    true,
		lastBlinkToggle: time.Now(),
		blinkInterval:   530 * time.Millisecond,
	}
}

// Text returns the current text content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content)
}

// SetText replaces all text content, clamping caret and selection to the
// new bounds.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	b.content = []rune(text)
	if b.caret > len(b.content) {
		b.caret = len(b.content)
	}
	if b.anchor > len(b.content) {
		b.anchor = len(b.content)
	}
	b.mu.Unlock()
	b.notifyChange()
}

// Len returns the number of codepoints in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

// Caret returns the current caret position.
func (b *Buffer) Caret() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.caret
}

// SetCaret moves the caret to a position, collapsing any selection.
// The position is clamped to the text bounds.
func (b *Buffer) SetCaret(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = b.clamp(pos)
	b.anchor = b.caret
}

// Selection returns the selected region, normalized so Start <= End.
// Returns the empty range at the caret when nothing is selected.
func (b *Buffer) Selection() textedit.Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection()
}

// selection returns the ordered selection bounds (must hold lock).
func (b *Buffer) selection() textedit.Range {
	return textedit.NewRange(b.anchor, b.caret)
}

// SetSelection sets the selected region, clamped to the text bounds.
// The caret moves to the end of the range.
func (b *Buffer) SetSelection(r textedit.Range) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r = r.Clamp(len(b.content))
	b.anchor = r.Start
	b.caret = r.End
}

// Extend moves the caret while keeping the selection anchor in place.
func (b *Buffer) Extend(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = b.clamp(pos)
}

// HasSelection returns true if text is selected.
func (b *Buffer) HasSelection() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.anchor != b.caret
}

// SelectedText returns the currently selected text.
func (b *Buffer) SelectedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sel := b.selection()
	return string(b.content[sel.Start:sel.End])
}

// SelectAll selects all text.
func (b *Buffer) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anchor = 0
	b.caret = len(b.content)
}

// ClearSelection collapses the selection without moving the caret.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anchor = b.caret
}

// SelectWordAt selects the word at the given position (for double-click).
func (b *Buffer) SelectWordAt(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos = b.clamp(pos)
	b.anchor = b.findWordStart(pos)
	b.caret = b.findWordEnd(pos)
}

// SelectLineAt selects the line containing the given position, including
// its trailing newline. Single-line buffers select everything.
func (b *Buffer) SelectLineAt(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.multiline {
		b.anchor = 0
		b.caret = len(b.content)
		return
	}

	pos = b.clamp(pos)
	lineStart := b.findLineStart(pos)
	lineEnd := b.findLineEnd(pos)
	if lineEnd < len(b.content) && b.content[lineEnd] == '\n' {
		lineEnd++
	}
	b.anchor = lineStart
	b.caret = lineEnd
}

// TextInRange returns the codepoints covered by the given range, clamped
// to the text bounds. An empty range yields an empty string.
func (b *Buffer) TextInRange(r textedit.Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r = r.Clamp(len(b.content))
	return string(b.content[r.Start:r.End])
}

// SetUnderlines replaces the temporary underline regions wholesale.
// The previous set is discarded in the same step, so observers never see
// a mix of old and new regions.
func (b *Buffer) SetUnderlines(regions []textedit.Range) {
	replaced := make([]textedit.Range, len(regions))
	copy(replaced, regions)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.underlines = replaced
}

// Underlines returns a copy of the temporary underline regions, each
// clamped to the current text bounds.
func (b *Buffer) Underlines() []textedit.Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]textedit.Range, len(b.underlines))
	for i, r := range b.underlines {
		out[i] = r.Clamp(len(b.content))
	}
	return out
}

// Insert inserts text at the caret. If there is a selection it is replaced
// and the selection collapses to a caret after the inserted text.
// Rejected silently in read-only mode.
func (b *Buffer) Insert(text string) {
	b.mu.Lock()

	if b.readOnly {
		b.mu.Unlock()
		return
	}

	if !b.multiline {
		text = strings.ReplaceAll(text, "\n", "")
		text = strings.ReplaceAll(text, "\r", "")
	}

	runes := []rune(text)

	if b.maxLength > 0 {
		sel := b.selection()
		available := b.maxLength - (len(b.content) - sel.Length())
		if available < 0 {
			available = 0
		}
		if len(runes) > available {
			runes = runes[:available]
		}
	}

	if len(runes) == 0 && b.anchor == b.caret {
		b.mu.Unlock()
		return
	}

	b.saveUndoState()

	// Delete the selection first, then splice in the new text.
	sel := b.selection()
	if !sel.Empty() {
		b.content = append(b.content[:sel.Start], b.content[sel.End:]...)
		b.caret = sel.Start
		b.anchor = sel.Start
	}

	newContent := make([]rune, 0, len(b.content)+len(runes))
	newContent = append(newContent, b.content[:b.caret]...)
	newContent = append(newContent, runes...)
	newContent = append(newContent, b.content[b.caret:]...)
	b.content = newContent

	b.caret += len(runes)
	b.anchor = b.caret

	b.mu.Unlock()
	b.notifyChange()
}

// Delete removes characters. count > 0 deletes forward, count < 0 deletes
// backward. A selection is deleted regardless of count.
// Rejected silently in read-only mode.
func (b *Buffer) Delete(count int) {
	b.mu.Lock()

	if b.readOnly {
		b.mu.Unlock()
		return
	}

	sel := b.selection()
	if !sel.Empty() {
		b.saveUndoState()
		b.content = append(b.content[:sel.Start], b.content[sel.End:]...)
		b.caret = sel.Start
		b.anchor = sel.Start
		b.mu.Unlock()
		b.notifyChange()
		return
	}

	if count == 0 {
		b.mu.Unlock()
		return
	}

	b.saveUndoState()
	changed := false
	if count > 0 {
		delEnd := b.clamp(b.caret + count)
		if b.caret < delEnd {
			b.content = append(b.content[:b.caret], b.content[delEnd:]...)
			changed = true
		}
	} else {
		delStart := b.clamp(b.caret + count)
		if delStart < b.caret {
			b.content = append(b.content[:delStart], b.content[b.caret:]...)
			b.caret = delStart
			b.anchor = delStart
			changed = true
		}
	}

	b.mu.Unlock()
	if changed {
		b.notifyChange()
	}
}

// DeleteWord deletes the word before or after the caret. A selection is
// deleted instead, matching Delete.
func (b *Buffer) DeleteWord(forward bool) {
	b.mu.Lock()

	if b.readOnly {
		b.mu.Unlock()
		return
	}

	sel := b.selection()
	if !sel.Empty() {
		b.saveUndoState()
		b.content = append(b.content[:sel.Start], b.content[sel.End:]...)
		b.caret = sel.Start
		b.anchor = sel.Start
		b.mu.Unlock()
		b.notifyChange()
		return
	}

	b.saveUndoState()
	changed := false
	if forward {
		wordEnd := b.findWordEnd(b.caret)
		if wordEnd > b.caret {
			b.content = append(b.content[:b.caret], b.content[wordEnd:]...)
			changed = true
		}
	} else {
		wordStart := b.findWordStart(b.caret)
		if wordStart < b.caret {
			b.content = append(b.content[:wordStart], b.content[b.caret:]...)
			b.caret = wordStart
			b.anchor = wordStart
			changed = true
		}
	}

	b.mu.Unlock()
	if changed {
		b.notifyChange()
	}
}

// MoveCaret moves the caret by delta characters.
// If extend is true, extends the selection; otherwise collapses it.
func (b *Buffer) MoveCaret(delta int, extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !extend && b.anchor != b.caret {
		// Collapse to the selection edge in the direction of travel.
		sel := b.selection()
		if delta < 0 {
			b.caret = sel.Start
		} else {
			b.caret = sel.End
		}
		b.anchor = b.caret
		return
	}

	b.caret = b.clamp(b.caret + delta)
	if !extend {
		b.anchor = b.caret
	}
}

// MoveToLineStart moves the caret to the beginning of the current line.
func (b *Buffer) MoveToLineStart(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = b.findLineStart(b.caret)
	if !extend {
		b.anchor = b.caret
	}
}

// MoveToLineEnd moves the caret to the end of the current line.
func (b *Buffer) MoveToLineEnd(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = b.findLineEnd(b.caret)
	if !extend {
		b.anchor = b.caret
	}
}

// MoveWord moves the caret by one word.
func (b *Buffer) MoveWord(forward bool, extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if forward {
		b.caret = b.findWordEnd(b.caret)
	} else {
		b.caret = b.findWordStart(b.caret)
	}
	if !extend {
		b.anchor = b.caret
	}
}

// MoveToStart moves the caret to the beginning of the text.
func (b *Buffer) MoveToStart(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = 0
	if !extend {
		b.anchor = 0
	}
}

// MoveToEnd moves the caret to the end of the text.
func (b *Buffer) MoveToEnd(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caret = len(b.content)
	if !extend {
		b.anchor = len(b.content)
	}
}

// SetMultiline enables or disables multiline mode.
func (b *Buffer) SetMultiline(multiline bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.multiline = multiline
}

// Multiline returns whether the buffer accepts newlines.
func (b *Buffer) Multiline() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.multiline
}

// SetMaxLength sets the maximum number of characters (0 = no limit).
func (b *Buffer) SetMaxLength(max int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maxLength = max
}

// SetPlaceholder sets placeholder text shown when empty.
func (b *Buffer) SetPlaceholder(placeholder string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.placeholder = placeholder
}

// Placeholder returns the placeholder text.
func (b *Buffer) Placeholder() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.placeholder
}

// SetPassword enables or disables password masking.
func (b *Buffer) SetPassword(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.password = enabled
	if enabled && b.maskRune == 0 {
		b.maskRune = '•'
	}
}

// IsPassword returns whether password mode is enabled.
func (b *Buffer) IsPassword() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.password
}

// SetMaskRune sets the character used to mask password text.
func (b *Buffer) SetMaskRune(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maskRune = r
}

// DisplayText returns the text to render, masked in password mode.
func (b *Buffer) DisplayText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.password {
		return string(b.content)
	}

	mask := b.maskRune
	if mask == 0 {
		mask = '•'
	}
	masked := make([]rune, len(b.content))
	for i := range masked {
		masked[i] = mask
	}
	return string(masked)
}

// SetReadOnly enables or disables read-only mode.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// IsReadOnly returns whether read-only mode is enabled.
func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// OnChange sets a callback invoked after the text content changes.
func (b *Buffer) OnChange(fn func(text string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// ============================================================================
// Undo / Redo
// ============================================================================

// saveUndoState pushes the current state onto the undo stack.
// Must be called with the lock held, before a content mutation.
func (b *Buffer) saveUndoState() {
	maxUndo := b.maxUndo
	if maxUndo == 0 {
		maxUndo = 100
	}

	b.undoStack = append(b.undoStack, b.snapshot())
	if len(b.undoStack) > maxUndo {
		b.undoStack = b.undoStack[1:]
	}

	// A new change invalidates the redo history.
	b.redoStack = nil
}

// snapshot copies the current state (must hold lock).
func (b *Buffer) snapshot() undoState {
	state := undoState{
		content: make([]rune, len(b.content)),
		caret:   b.caret,
		anchor:  b.anchor,
	}
	copy(state.content, b.content)
	return state
}

// restore applies a snapshot (must hold lock).
func (b *Buffer) restore(state undoState) {
	b.content = make([]rune, len(state.content))
	copy(b.content, state.content)
	b.caret = state.caret
	b.anchor = state.anchor
}

// Undo reverts to the previous state. Returns false if there is nothing
// to undo.
func (b *Buffer) Undo() bool {
	b.mu.Lock()

	if len(b.undoStack) == 0 {
		b.mu.Unlock()
		return false
	}

	b.redoStack = append(b.redoStack, b.snapshot())
	state := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.restore(state)

	b.mu.Unlock()
	b.notifyChange()
	return true
}

// Redo restores the previously undone state. Returns false if there is
// nothing to redo.
func (b *Buffer) Redo() bool {
	b.mu.Lock()

	if len(b.redoStack) == 0 {
		b.mu.Unlock()
		return false
	}

	b.undoStack = append(b.undoStack, b.snapshot())
	state := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.restore(state)

	b.mu.Unlock()
	b.notifyChange()
	return true
}

// ============================================================================
// Caret Blink
// ============================================================================

// SetBlinkInterval sets the caret blink half-period.
func (b *Buffer) SetBlinkInterval(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d > 0 {
		b.blinkInterval = d
	}
}

// CaretVisible returns whether the caret should currently be drawn.
func (b *Buffer) CaretVisible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.caretVisible
}

// UpdateBlink advances the blink state based on elapsed time.
// Returns true if visibility changed (requires redraw).
func (b *Buffer) UpdateBlink() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.lastBlinkToggle) >= b.blinkInterval {
		b.caretVisible = !b.caretVisible
		b.lastBlinkToggle = time.Now()
		return true
	}
	return false
}

// ResetBlink makes the caret visible and restarts the blink timer.
// Call on every keystroke or caret move.
func (b *Buffer) ResetBlink() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.caretVisible = true
	b.lastBlinkToggle = time.Now()
}

// ============================================================================
// Helpers (must hold lock)
// ============================================================================

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.content) {
		return len(b.content)
	}
	return pos
}

// notifyChange fires the change callback. Must be called without the lock.
func (b *Buffer) notifyChange() {
	b.mu.RLock()
	fn := b.onChange
	text := string(b.content)
	b.mu.RUnlock()
	if fn != nil {
		fn(text)
	}
}

func (b *Buffer) findWordStart(pos int) int {
	if pos <= 0 {
		return 0
	}
	for pos > 0 && unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	return pos
}

func (b *Buffer) findWordEnd(pos int) int {
	length := len(b.content)
	if pos >= length {
		return length
	}
	for pos < length && unicode.IsSpace(b.content[pos]) {
		pos++
	}
	for pos < length && !unicode.IsSpace(b.content[pos]) {
		pos++
	}
	return pos
}

func (b *Buffer) findLineStart(pos int) int {
	for pos > 0 && b.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Buffer) findLineEnd(pos int) int {
	length := len(b.content)
	for pos < length && b.content[pos] != '\n' {
		pos++
	}
	return pos
}
