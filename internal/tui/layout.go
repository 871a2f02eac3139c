package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// clampBlock fits a rendered block into a width*height cell, truncating long
// lines with an ellipsis instead of letting them wrap.
func clampBlock(s string, width, height int) string {
	if width < 2 || height < 1 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, ln := range lines {
		if xansi.StringWidth(ln) > width {
			lines[i] = xansi.Cut(ln, 0, width-1) + "…"
		}
	}
	return strings.Join(lines, "\n")
}
