package render

import "github.com/mattn/go-runewidth"

// TruncateLabel truncates a label to max visual width (cells), adding an
// ellipsis if needed. Uses go-runewidth to handle wide characters correctly.
func TruncateLabel(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	const suffix = "…"
	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}
