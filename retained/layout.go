package retained

import (
	"unicode"

	"github.com/agiangrant/textedit/internal/textmetrics"
)

// ============================================================================
// Text Wrapping
// ============================================================================

// WrappedLine is a single visual line of wrapped text.
type WrappedLine struct {
	Text  string // The text content of this line
	Start int    // Codepoint index in the original text where this line starts
	End   int    // Codepoint index where this line ends (exclusive)
}

// WrapText breaks text into visual lines that fit within maxWidth pixels.
// Lines break at word boundaries where possible, and always at newlines.
// maxWidth <= 0 disables soft wrapping: lines break only at newlines, so
// overlong lines extend past the widget bounds.
// The result always contains at least one line.
func WrapText(text string, maxWidth, fontSize float32, m textmetrics.Measurer) []WrappedLine {
	if text == "" {
		return []WrappedLine{{}}
	}

	var lines []WrappedLine
	runes := []rune(text)
	lineStart := 0

	lineEnd := lineStart
	lastWordEnd := lineStart

	for lineEnd < len(runes) {
		r := runes[lineEnd]

		// Hard break on newline
		if r == '\n' {
			lines = append(lines, WrappedLine{
				Text:  string(runes[lineStart:lineEnd]),
				Start: lineStart,
				End:   lineEnd,
			})
			lineStart = lineEnd + 1 // Skip the newline
			lineEnd = lineStart
			lastWordEnd = lineStart
			continue
		}

		if unicode.IsSpace(r) {
			lastWordEnd = lineEnd + 1
		}

		if maxWidth > 0 && lineEnd > lineStart {
			lineText := string(runes[lineStart : lineEnd+1])
			width := m.Advance(lineText, lineEnd+1-lineStart, fontSize)
			if width > maxWidth {
				breakPoint := lineEnd
				if lastWordEnd > lineStart {
					breakPoint = lastWordEnd
				}

				lines = append(lines, WrappedLine{
					Text:  string(runes[lineStart:breakPoint]),
					Start: lineStart,
					End:   breakPoint,
				})

				// Skip whitespace at the start of the next line
				lineStart = breakPoint
				for lineStart < len(runes) && runes[lineStart] == ' ' {
					lineStart++
				}
				lineEnd = lineStart
				lastWordEnd = lineStart
				continue
			}
		}

		lineEnd++
	}

	if lineStart < len(runes) {
		lines = append(lines, WrappedLine{
			Text:  string(runes[lineStart:]),
			Start: lineStart,
			End:   len(runes),
		})
	} else if len(runes) > 0 && runes[len(runes)-1] == '\n' {
		// Text ends with a newline: an empty final line carries the caret.
		lines = append(lines, WrappedLine{Start: lineStart, End: lineStart})
	}

	if len(lines) == 0 {
		lines = append(lines, WrappedLine{})
	}

	return lines
}

// caretRowCol locates a caret index within wrapped lines, returning the
// 0-based row and the x offset in pixels within that row.
func caretRowCol(lines []WrappedLine, index int, fontSize float32, m textmetrics.Measurer) (row int, colX float32) {
	for i, line := range lines {
		last := i == len(lines)-1
		if index >= line.Start && (index < line.End || (last && index <= line.End)) {
			offset := index - line.Start
			if offset > 0 && line.Text != "" {
				colX = m.Advance(line.Text, offset, fontSize)
			}
			return i, colX
		}
		// Caret exactly at the end of a line that precedes another line.
		if index == line.End && !last {
			return i, m.Advance(line.Text, line.End-line.Start, fontSize)
		}
	}
	if len(lines) > 0 {
		lastLine := lines[len(lines)-1]
		return len(lines) - 1, m.Advance(lastLine.Text, lastLine.End-lastLine.Start, fontSize)
	}
	return 0, 0
}

// indexFromPosition returns the caret index nearest the given x offset on
// the given row. Rows and offsets outside the text clamp to the nearest
// valid position.
func indexFromPosition(lines []WrappedLine, row int, xPos float32, fontSize float32, m textmetrics.Measurer) int {
	if len(lines) == 0 {
		return 0
	}

	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}

	line := lines[row]
	n := line.End - line.Start

	// Linear scan over caret slots; line lengths keep this cheap.
	for i := 0; i < n; i++ {
		charX := m.Advance(line.Text, i, fontSize)
		nextX := m.Advance(line.Text, i+1, fontSize)
		if xPos < (charX+nextX)/2 {
			return line.Start + i
		}
	}

	return line.End
}

// moveVertical moves a caret index up or down by delta visual lines,
// holding the horizontal position as closely as possible.
func moveVertical(lines []WrappedLine, index, delta int, fontSize float32, m textmetrics.Measurer, totalChars int) int {
	if len(lines) == 0 {
		return 0
	}

	row, colX := caretRowCol(lines, index, fontSize, m)
	target := row + delta
	if target < 0 {
		target = 0
	}
	if target >= len(lines) {
		target = len(lines) - 1
	}

	if target == row {
		// Already at the edge: snap to the start or end of the text.
		if delta < 0 {
			return 0
		}
		if delta > 0 {
			return totalChars
		}
		return index
	}

	return indexFromPosition(lines, target, colX, fontSize, m)
}
