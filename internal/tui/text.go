package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// boxInset is the horizontal space BoxStyle takes from its width: border
// plus padding on both sides.
const boxInset = 6

// wrapForBox wraps s to fit inside a BoxStyle of the given width. Words are
// never split; one longer than the line gets a line of its own.
func wrapForBox(s string, boxWidth int) string {
	limit := boxWidth - boxInset
	if limit <= 0 {
		limit = 60
	}

	var lines []string
	var line []string
	used := 0
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if len(line) > 0 && used+1+w > limit {
			lines = append(lines, strings.Join(line, " "))
			line, used = nil, 0
		}
		if len(line) > 0 {
			used++
		}
		line = append(line, word)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}
