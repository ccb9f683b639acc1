package retained

import (
	"testing"

	"github.com/agiangrant/textedit/internal/textmetrics"
)

var fixed = textmetrics.Fixed{EmScale: 1}

func TestWrapTextHardBreaks(t *testing.T) {
	lines := WrapText("one\ntwo\n", 0, 10, fixed)

	want := []WrappedLine{
		{Text: "one", Start: 0, End: 3},
		{Text: "two", Start: 4, End: 7},
		{Text: "", Start: 8, End: 8},
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line[%d] = %v, want %v", i, lines[i], want[i])
		}
	}
}

func TestWrapTextSoftBreaksAtWords(t *testing.T) {
	// 10px glyphs, 45px width: at most 4 glyphs per line.
	lines := WrapText("aaa bb c", 45, 10, fixed)

	if len(lines) < 2 {
		t.Fatalf("expected soft wrapping, got %v", lines)
	}
	for _, line := range lines {
		if n := line.End - line.Start; n > 4 {
			t.Errorf("line %q has %d glyphs, exceeds width", line.Text, n)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	lines := WrapText("", 100, 10, fixed)
	if len(lines) != 1 || lines[0] != (WrappedLine{}) {
		t.Errorf("lines = %v, want one empty line", lines)
	}
}

func TestWrapTextLongWordBreaksMidWord(t *testing.T) {
	lines := WrapText("abcdefghij", 35, 10, fixed)

	if len(lines) < 2 {
		t.Fatalf("expected mid-word break, got %v", lines)
	}
	// Indices must tile the text without gaps.
	pos := 0
	for _, line := range lines {
		if line.Start != pos {
			t.Errorf("line %q starts at %d, want %d", line.Text, line.Start, pos)
		}
		pos = line.End
	}
	if pos != 10 {
		t.Errorf("lines end at %d, want 10", pos)
	}
}

func TestCaretRowColAndBack(t *testing.T) {
	lines := WrapText("hello\nworld", 0, 10, fixed)

	for index := 0; index <= 11; index++ {
		row, colX := caretRowCol(lines, index, 10, fixed)
		back := indexFromPosition(lines, row, colX+1, 10, fixed)
		if back != index && index != 5 {
			// Index 5 is the newline itself; it renders at the end of
			// row 0 and maps back there.
			t.Errorf("index %d -> row %d x %v -> %d", index, row, colX, back)
		}
	}
}

func TestMoveVertical(t *testing.T) {
	lines := WrapText("aaaa\nbb\ncccc", 0, 10, fixed)

	// Down from index 2 ("aa|aa") lands at column 2 of "bb", clamped to
	// its end.
	if got := moveVertical(lines, 2, 1, 10, fixed, 12); got != 7 {
		t.Errorf("down from 2 = %d, want 7", got)
	}

	// Up from the middle line returns to column 0-2 of the first.
	if got := moveVertical(lines, 6, -1, 10, fixed, 12); got != 1 {
		t.Errorf("up from 6 = %d, want 1", got)
	}

	// Up from the top snaps to the start.
	if got := moveVertical(lines, 2, -1, 10, fixed, 12); got != 0 {
		t.Errorf("up from top = %d, want 0", got)
	}

	// Down from the bottom snaps to the end.
	if got := moveVertical(lines, 10, 1, 10, fixed, 12); got != 12 {
		t.Errorf("down from bottom = %d, want 12", got)
	}
}
