package retained

import (
	"testing"

	"github.com/agiangrant/textedit"
)

func TestInsertAtCaret(t *testing.T) {
	b := NewBuffer()
	b.SetText("hello")
	b.SetCaret(5)

	b.Insert("!")

	if got := b.Text(); got != "hello!" {
		t.Errorf("text = %q, want %q", got, "hello!")
	}
	if got := b.Caret(); got != 6 {
		t.Errorf("caret = %d, want 6", got)
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	b := NewBuffer()
	b.SetText("hello world")
	b.SetSelection(textedit.Range{Start: 0, End: 5})

	b.Insert("goodbye")

	if got := b.Text(); got != "goodbye world" {
		t.Errorf("text = %q, want %q", got, "goodbye world")
	}
	if got := b.Caret(); got != 7 {
		t.Errorf("caret = %d, want 7", got)
	}
	if b.HasSelection() {
		t.Error("selection should collapse after insert")
	}
}

func TestSetSelectionClampsPastEnd(t *testing.T) {
	b := NewBuffer()
	b.SetText("abc")

	b.SetSelection(textedit.Range{Start: 10, End: 20})

	if got := b.Selection(); got != (textedit.Range{Start: 3, End: 3}) {
		t.Errorf("selection = %v, want [3,3)", got)
	}
}

func TestSetTextClampsCaretAndSelection(t *testing.T) {
	b := NewBuffer()
	b.SetText("a long line of text")
	b.SetSelection(textedit.Range{Start: 5, End: 15})

	b.SetText("ab")

	if got := b.Caret(); got > b.Len() {
		t.Errorf("caret = %d beyond length %d", got, b.Len())
	}
	sel := b.Selection()
	if sel.Start > b.Len() || sel.End > b.Len() {
		t.Errorf("selection %v beyond length %d", sel, b.Len())
	}
}

func TestTextInRange(t *testing.T) {
	b := NewBuffer()
	b.SetText("héllo wörld")

	tests := []struct {
		name string
		r    textedit.Range
		want string
	}{
		{"full span", textedit.Range{Start: 0, End: 11}, "héllo wörld"},
		{"subrange", textedit.Range{Start: 6, End: 11}, "wörld"},
		{"empty", textedit.Range{Start: 4, End: 4}, ""},
		{"end past total", textedit.Range{Start: 6, End: 99}, "wörld"},
		{"fully past total", textedit.Range{Start: 50, End: 99}, ""},
		{"inverted", textedit.Range{Start: 5, End: 0}, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.TextInRange(tt.r); got != tt.want {
				t.Errorf("TextInRange(%v) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}
}

func TestUnderlinesReplacedWholesale(t *testing.T) {
	b := NewBuffer()
	b.SetText("hello world")

	first := []textedit.Range{{Start: 0, End: 2}, {Start: 2, End: 5}}
	b.SetUnderlines(first)

	// Caller mutating its slice must not leak into the buffer.
	first[0] = textedit.Range{Start: 9, End: 9}
	if got := b.Underlines(); got[0] != (textedit.Range{Start: 0, End: 2}) {
		t.Errorf("stored underline aliased caller slice: %v", got)
	}

	// Setting the same sequence twice observes identically.
	b.SetUnderlines([]textedit.Range{{Start: 0, End: 2}, {Start: 2, End: 5}})
	b.SetUnderlines([]textedit.Range{{Start: 0, End: 2}, {Start: 2, End: 5}})
	got := b.Underlines()
	if len(got) != 2 || got[0] != (textedit.Range{Start: 0, End: 2}) || got[1] != (textedit.Range{Start: 2, End: 5}) {
		t.Errorf("underlines = %v", got)
	}

	// A new set replaces the old one entirely.
	b.SetUnderlines([]textedit.Range{{Start: 6, End: 11}})
	got = b.Underlines()
	if len(got) != 1 || got[0] != (textedit.Range{Start: 6, End: 11}) {
		t.Errorf("underlines = %v, want single [6,11)", got)
	}

	b.SetUnderlines(nil)
	if got := b.Underlines(); len(got) != 0 {
		t.Errorf("underlines = %v, want none", got)
	}
}

func TestUnderlinesClampToShrunkenText(t *testing.T) {
	b := NewBuffer()
	b.SetText("hello world")
	b.SetUnderlines([]textedit.Range{{Start: 6, End: 11}})

	b.SetText("hi")

	for _, u := range b.Underlines() {
		if u.End > b.Len() {
			t.Errorf("underline %v beyond length %d", u, b.Len())
		}
	}
}

func TestReadOnlyRejectsEditing(t *testing.T) {
	b := NewBuffer()
	b.SetText("locked")
	b.SetReadOnly(true)

	b.Insert("x")
	b.Delete(-1)
	b.DeleteWord(true)

	if got := b.Text(); got != "locked" {
		t.Errorf("text = %q, want unchanged", got)
	}

	// Selection still works in read-only mode.
	b.SelectAll()
	if got := b.SelectedText(); got != "locked" {
		t.Errorf("selected = %q", got)
	}
}

func TestMaxLengthTruncatesInsert(t *testing.T) {
	b := NewBuffer()
	b.SetMaxLength(5)

	b.Insert("abcdefgh")

	if got := b.Text(); got != "abcde" {
		t.Errorf("text = %q, want %q", got, "abcde")
	}
}

func TestSingleLineStripsNewlines(t *testing.T) {
	b := NewBuffer()

	b.Insert("one\ntwo\r")

	if got := b.Text(); got != "onetwo" {
		t.Errorf("text = %q, want %q", got, "onetwo")
	}

	b.SetMultiline(true)
	b.Insert("\nthree")
	if got := b.Text(); got != "onetwo\nthree" {
		t.Errorf("text = %q, want newline kept", got)
	}
}

func TestDelete(t *testing.T) {
	b := NewBuffer()
	b.SetText("abcdef")
	b.SetCaret(3)

	b.Delete(-1)
	if got := b.Text(); got != "abdef" {
		t.Errorf("backward delete = %q", got)
	}
	if got := b.Caret(); got != 2 {
		t.Errorf("caret = %d, want 2", got)
	}

	b.Delete(1)
	if got := b.Text(); got != "abef" {
		t.Errorf("forward delete = %q", got)
	}

	// Deleting past either end clamps.
	b.SetCaret(0)
	b.Delete(-5)
	if got := b.Text(); got != "abef" {
		t.Errorf("delete before start = %q", got)
	}
	b.SetCaret(4)
	b.Delete(10)
	if got := b.Text(); got != "abef" {
		t.Errorf("delete past end = %q", got)
	}
}

func TestWordOperations(t *testing.T) {
	b := NewBuffer()
	b.SetText("alpha beta gamma")

	b.SelectWordAt(7)
	if got := b.SelectedText(); got != "beta" {
		t.Errorf("SelectWordAt = %q, want %q", got, "beta")
	}

	b.SetCaret(16)
	b.DeleteWord(false)
	if got := b.Text(); got != "alpha beta " {
		t.Errorf("DeleteWord backward = %q", got)
	}
}

func TestUndoRedo(t *testing.T) {
	b := NewBuffer()
	b.Insert("hello")
	b.Insert(" world")

	if !b.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := b.Text(); got != "hello" {
		t.Errorf("after undo = %q", got)
	}

	if !b.Redo() {
		t.Fatal("Redo returned false")
	}
	if got := b.Text(); got != "hello world" {
		t.Errorf("after redo = %q", got)
	}

	b.Undo()
	b.Undo()
	if b.Undo() {
		t.Error("Undo on empty stack should return false")
	}
}

func TestOnChangeFires(t *testing.T) {
	b := NewBuffer()

	var got string
	b.OnChange(func(text string) { got = text })

	b.Insert("abc")
	if got != "abc" {
		t.Errorf("onChange saw %q, want %q", got, "abc")
	}

	b.Delete(-1)
	if got != "ab" {
		t.Errorf("onChange saw %q, want %q", got, "ab")
	}
}

func TestCaretInvariant(t *testing.T) {
	b := NewBuffer()
	b.SetText("hello")

	ops := []func(){
		func() { b.SetCaret(-10) },
		func() { b.SetCaret(99) },
		func() { b.MoveCaret(100, false) },
		func() { b.MoveCaret(-100, true) },
		func() { b.Insert("x") },
		func() { b.Delete(-3) },
		func() { b.SetText("") },
	}

	for i, op := range ops {
		op()
		if c := b.Caret(); c < 0 || c > b.Len() {
			t.Fatalf("op %d: caret %d outside [0,%d]", i, c, b.Len())
		}
		sel := b.Selection()
		if sel.Start < 0 || sel.End > b.Len() {
			t.Fatalf("op %d: selection %v outside [0,%d]", i, sel, b.Len())
		}
	}
}

func TestPasswordMasking(t *testing.T) {
	b := NewBuffer()
	b.SetText("secret")
	b.SetPassword(true)

	if got := b.DisplayText(); got != "••••••" {
		t.Errorf("DisplayText = %q", got)
	}
	if got := b.Text(); got != "secret" {
		t.Errorf("Text = %q, want raw content", got)
	}

	b.SetMaskRune('*')
	if got := b.DisplayText(); got != "******" {
		t.Errorf("DisplayText = %q", got)
	}
}
