package tui

import (
	"strings"
	"testing"
)

func TestBuildTypingLineCurrentWordStyles(t *testing.T) {
	line := buildTypingLine([]string{"abc"}, []rune("ax"))
	if len(line) != 3 {
		t.Fatalf("expected 3 styled runes, got %d", len(line))
	}
	if line[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for matching rune")
	}
	if line[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for mismatched position")
	}
	if line[2].s != cursorStyle.Render("c") {
		t.Fatalf("expected cursor style at next position")
	}
}

func TestBuildTypingLineExtraTypedChars(t *testing.T) {
	line := buildTypingLine([]string{"ab"}, []rune("abxy"))
	if len(line) != 4 {
		t.Fatalf("expected 4 styled runes, got %d", len(line))
	}
	if line[2].s != incorrectStyle.Render("x") || line[3].s != incorrectStyle.Render("y") {
		t.Fatalf("expected extra typed chars rendered as errors")
	}
}

func TestBuildTypingLineUpcomingWordsPending(t *testing.T) {
	line := buildTypingLine([]string{"go", "on"}, nil)
	// "go" + separator space + "on"
	if len(line) != 5 {
		t.Fatalf("expected 5 styled runes, got %d", len(line))
	}
	if !line[2].isSpace {
		t.Fatalf("expected word separator space")
	}
	if line[3].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for upcoming word")
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	line := buildTypingLine([]string{"aaa", "bbb", "ccc"}, nil)
	wrapped := wrapStyledRunes(line, 7)
	rows := strings.Split(wrapped, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(rows), wrapped)
	}
}

func TestWrapStyledRunesZeroWidthPassthrough(t *testing.T) {
	line := buildTypingLine([]string{"aaa", "bbb"}, nil)
	if wrapStyledRunes(line, 0) != renderStyledRunes(line) {
		t.Fatalf("zero width must not wrap")
	}
}
