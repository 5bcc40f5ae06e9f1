package preview

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const minWidth = 40

// Box prints lines inside a double-line border with title centred in the header.
// The inner width is the widest of the lines, the title and minWidth.
func Box(w io.Writer, title string, lines []string) {
	width := max(utf8.RuneCountInString(title), minWidth)
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	sep := strings.Repeat("═", width+2)

	fmt.Fprintf(w, "\n╔%s╗\n", sep)
	fmt.Fprintf(w, "║ %s ║\n", center(title, width))
	fmt.Fprintf(w, "╠%s╣\n", sep)
	for _, l := range lines {
		fmt.Fprintf(w, "║ %s ║\n", ljust(l, width))
	}
	fmt.Fprintf(w, "╚%s╝\n", sep)
}

// Banner prints text centred between two rules of minWidth.
func Banner(w io.Writer, text string) {
	rule := strings.Repeat("═", minWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, center(text, minWidth), rule)
}

// center pads s to width; an odd margin puts the extra space on the left
// only when width is odd.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	marg := width - n
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}

func ljust(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
