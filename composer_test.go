package textedit

import "testing"

func fullText(t *fakeTarget) string {
	return t.TextInRange(Range{Start: 0, End: t.TotalNumChars()})
}

func TestComposerSession(t *testing.T) {
	target := newFakeTarget("hello ")
	c := NewComposer(target)

	// First composition pass: raw pinyin with two candidate segments.
	c.SetComposingText("nihao", []Range{{0, 2}, {2, 5}})

	if got := fullText(target); got != "hello nihao" {
		t.Fatalf("text = %q, want %q", got, "hello nihao")
	}
	if !c.Composing() {
		t.Error("expected composing state")
	}
	wantUnderlines := []Range{{6, 8}, {8, 11}}
	if len(target.underlines) != len(wantUnderlines) {
		t.Fatalf("underlines = %v, want %v", target.underlines, wantUnderlines)
	}
	for i, u := range wantUnderlines {
		if target.underlines[i] != u {
			t.Errorf("underline[%d] = %v, want %v", i, target.underlines[i], u)
		}
	}

	// Conversion pass: candidates replace the raw input wholesale.
	c.SetComposingText("你好", []Range{{0, 2}})

	if got := fullText(target); got != "hello 你好" {
		t.Fatalf("text = %q, want %q", got, "hello 你好")
	}
	if target.underlines[0] != (Range{6, 8}) {
		t.Errorf("underline = %v, want [6,8)", target.underlines[0])
	}

	// Commit finalizes and clears the underlines.
	c.Commit("你好")

	if got := fullText(target); got != "hello 你好" {
		t.Fatalf("text after commit = %q", got)
	}
	if len(target.underlines) != 0 {
		t.Errorf("underlines not cleared: %v", target.underlines)
	}
	if c.Composing() {
		t.Error("composing should end on commit")
	}
	if got := target.CaretPosition(); got != 8 {
		t.Errorf("caret = %d, want 8", got)
	}
}

func TestComposerReplacesSelection(t *testing.T) {
	target := newFakeTarget("hello world")
	target.SetHighlightedRegion(Range{0, 5})

	c := NewComposer(target)
	c.SetComposingText("goodbye", nil)

	if got := fullText(target); got != "goodbye world" {
		t.Fatalf("text = %q, want %q", got, "goodbye world")
	}
	if got := c.Region(); got != (Range{0, 7}) {
		t.Errorf("composition region = %v, want [0,7)", got)
	}
}

func TestComposerCancel(t *testing.T) {
	target := newFakeTarget("hello ")
	c := NewComposer(target)

	c.SetComposingText("nihao", []Range{{0, 5}})
	c.Cancel()

	if got := fullText(target); got != "hello " {
		t.Errorf("text = %q, want original restored", got)
	}
	if len(target.underlines) != 0 {
		t.Errorf("underlines not cleared: %v", target.underlines)
	}
	if c.Composing() {
		t.Error("composing should end on cancel")
	}

	// Cancel with nothing in progress is a no-op.
	c.Cancel()
	if got := fullText(target); got != "hello " {
		t.Errorf("text = %q after redundant cancel", got)
	}
}

func TestComposerCommitWithoutComposition(t *testing.T) {
	target := newFakeTarget("abc")
	c := NewComposer(target)

	c.Commit("!")

	if got := fullText(target); got != "abc!" {
		t.Errorf("text = %q, want %q", got, "abc!")
	}
	if got := target.CaretPosition(); got != 4 {
		t.Errorf("caret = %d, want 4", got)
	}
}

func TestComposerRegionIdle(t *testing.T) {
	target := newFakeTarget("abc")
	target.SetHighlightedRegion(EmptyRangeAt(1))

	c := NewComposer(target)
	if got := c.Region(); got != (Range{1, 1}) {
		t.Errorf("idle region = %v, want empty range at caret", got)
	}
}
