package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites an overlay string on top of a base string at the given
// character position (x, y). Both are treated as line-based grids.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := padRight(ansi.Truncate(target, x, ""), x)

		overlayLine := padRight(line, overlayWidth)
		right := ansi.TruncateLeft(target, x+overlayWidth, "")

		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

// centerOverlay places overlay in the middle of a width x height base.
func centerOverlay(base, overlay string, width, height int) string {
	lines := splitLines(overlay)
	x := max(0, (width-maxLineWidth(lines))/2)
	y := max(0, (height-len(lines))/2)
	return overlayAt(base, overlay, x, y, width, height)
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// maxLineWidth returns the visual width of the widest line.
func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces so its visual width equals width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// centerLine pads s on both sides to width.
func centerLine(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// truncate shortens s to width cells, ending in an ellipsis if cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// clipHeight keeps at most height lines of s.
func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
