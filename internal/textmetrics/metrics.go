// Package textmetrics abstracts horizontal text measurement so the editor
// widget can lay out carets and selections against whatever font engine
// the host toolkit provides.
package textmetrics

// Measurer reports pixel metrics for laid-out text.
type Measurer interface {
	// Advance returns the x offset in pixels from the start of text to the
	// caret slot before the rune at index n. n is a rune index; n equal to
	// the rune count gives the full text width.
	Advance(text string, n int, fontSize float32) float32

	// LineHeight returns the height in pixels of one text line.
	LineHeight(fontSize float32) float32
}

// Fixed is a deterministic fixed-advance Measurer: every rune advances by
// the same fraction of the font size. It stands in when no platform font
// engine is attached, and keeps layout tests host-independent.
type Fixed struct {
	// EmScale is the per-rune advance as a fraction of the font size.
	// Zero means the default of 0.6.
	EmScale float32

	// LineScale is the line height as a fraction of the font size.
	// Zero means the default of 1.5.
	LineScale float32
}

func (f Fixed) emScale() float32 {
	if f.EmScale > 0 {
		return f.EmScale
	}
	return 0.6
}

func (f Fixed) Advance(text string, n int, fontSize float32) float32 {
	if n < 0 {
		return 0
	}
	count := 0
	for range text {
		if count == n {
			break
		}
		count++
	}
	return float32(count) * f.emScale() * fontSize
}

func (f Fixed) LineHeight(fontSize float32) float32 {
	scale := f.LineScale
	if scale <= 0 {
		scale = 1.5
	}
	return fontSize * scale
}

// Default returns the measurer used when none is configured.
func Default() Measurer {
	return Fixed{}
}
