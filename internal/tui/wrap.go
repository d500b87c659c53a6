// Package tui provides the Bubble Tea real-time session interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildTypingLine styles the visible word window. targets[0] is the word in
// progress, compared rune by rune against the pending buffer; later targets
// render as upcoming text. Typed characters past the end of the current
// target are shown as extra errors.
func buildTypingLine(targets []string, buffer []rune) []styledRune {
	out := make([]styledRune, 0, 64)
	for wordIdx, target := range targets {
		if wordIdx > 0 {
			out = append(out, styledRune{s: pendingStyle.Render(" "), width: 1, isSpace: true})
		}
		targetRunes := []rune(target)
		if wordIdx != 0 {
			for _, r := range targetRunes {
				out = append(out, styledRune{s: pendingStyle.Render(string(r)), width: runewidth.RuneWidth(r)})
			}
			continue
		}
		for i, r := range targetRunes {
			style := pendingStyle
			switch {
			case i < len(buffer) && buffer[i] == r:
				style = correctStyle
			case i < len(buffer):
				style = incorrectStyle
			case i == len(buffer):
				style = cursorStyle
			}
			out = append(out, styledRune{s: style.Render(string(r)), width: runewidth.RuneWidth(r)})
		}
		for _, r := range buffer[min(len(buffer), len(targetRunes)):] {
			out = append(out, styledRune{s: incorrectStyle.Render(string(r)), width: runewidth.RuneWidth(r)})
		}
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes greedily wraps styled runes into display-width lines,
// breaking at the last space when possible.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
