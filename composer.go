package textedit

// Composer drives a Target on behalf of a platform input method.
//
// An IME delivers composed scripts in two phases: it repeatedly replaces an
// in-progress "composition" (for example the pinyin being converted) and
// finally commits the chosen text. Composer tracks the span the composition
// occupies in the target, replaces it wholesale on each update, and keeps
// the target's temporary underlining in sync with the candidate segments.
//
// All calls are synchronous and run on the UI thread, interleaved with
// keystroke delivery.
type Composer struct {
	target    Target
	composing bool
	region    Range // span of the in-progress composition in the target
}

// NewComposer returns a Composer driving the given target.
func NewComposer(t Target) *Composer {
	return &Composer{target: t}
}

// Composing returns true while an uncommitted composition is present.
func (c *Composer) Composing() bool {
	return c.composing
}

// Region returns the span the current composition occupies in the target,
// or an empty range at the caret when nothing is being composed.
func (c *Composer) Region() Range {
	if !c.composing {
		return EmptyRangeAt(c.target.CaretPosition())
	}
	return c.region
}

// SetComposingText replaces the in-progress composition with text.
//
// The first call of a session replaces the active selection, if any.
// underlines are segment ranges relative to the start of the composed text
// (e.g. one per conversion candidate); they are translated to absolute
// positions and pushed to the target as a single atomic set.
func (c *Composer) SetComposingText(text string, underlines []Range) {
	c.replaceComposition(text)

	abs := make([]Range, 0, len(underlines))
	for _, u := range underlines {
		abs = append(abs, u.Normalized().Shifted(c.region.Start))
	}
	c.target.SetTemporaryUnderlining(abs)
}

// Commit finalizes the composition session, replacing any in-progress
// composition with text and clearing all temporary underlining. The caret
// ends up after the committed text. Committing with no active composition
// inserts at the caret like ordinary typing.
func (c *Composer) Commit(text string) {
	c.replaceComposition(text)
	c.target.SetTemporaryUnderlining(nil)
	c.composing = false
	c.region = Range{}
}

// Cancel abandons the composition session, removing any in-progress text
// and clearing all temporary underlining.
func (c *Composer) Cancel() {
	if !c.composing {
		return
	}
	c.target.SetHighlightedRegion(c.region)
	c.target.InsertTextAtCaret("")
	c.target.SetTemporaryUnderlining(nil)
	c.composing = false
	c.region = Range{}
}

// replaceComposition swaps the current composition span (or the active
// selection, when starting a session) for text and records the new span.
func (c *Composer) replaceComposition(text string) {
	if c.composing {
		c.target.SetHighlightedRegion(c.region)
	}
	start := c.target.HighlightedRegion().Normalized().Start
	if c.target.HighlightedRegion().Empty() {
		start = c.target.CaretPosition()
	}
	c.target.InsertTextAtCaret(text)
	c.region = Range{Start: start, End: start + runeLen(text)}
	c.composing = true
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
