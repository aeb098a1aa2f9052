package tui

import (
	"fmt"
	"strings"

	"github.com/gabapcia/transferscope/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"
)

// cellWidth returns the visible display width of s, ignoring ANSI sequences.
func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func pad(s string, w int) string {
	visible := cellWidth(s)
	if visible >= w {
		return s
	}
	return s + strings.Repeat(" ", w-visible)
}

// shortHex abbreviates long hex strings to their first and last four
// characters, e.g. 0x12...abcd.
func shortHex(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// window returns the [start, end) rows of a table of n rows shown in height
// lines, scrolled so that row position is the last visible one once it moves
// past the first page.
func window(n, height, position int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}

	start := min(max(position-height+1, 0), n-height)
	return start, start + height
}

// thumb returns the scrollbar line, within [0, visible), for position in
// [0, scrollRange].
func thumb(visible, position, scrollRange int) int {
	if visible <= 1 || scrollRange <= 0 {
		return 0
	}
	return min(position, scrollRange) * (visible - 1) / scrollRange
}

type table struct {
	headers []string
	rows    [][]string
	state   dashboard.TableState
	height  int
}

func (t table) render() string {
	ncols := len(t.headers)

	widths := make([]int, ncols)
	for i, h := range t.headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range t.rows {
		for i := 0; i < ncols && i < len(row); i++ {
			widths[i] = max(widths[i], cellWidth(row[i]))
		}
	}

	border := func(s string) string { return borderStyle.Render(s) }

	dashes := make([]string, ncols)
	for i, w := range widths {
		dashes[i] = strings.Repeat("─", w+2)
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, ncols)
		for i := range ncols {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = style.Render(" " + pad(val, widths[i]) + " ")
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	start, end := window(len(t.rows), t.height, t.state.ScrollPosition)
	scrollable := end-start < len(t.rows)
	bar := thumb(end-start, t.state.ScrollPosition, t.state.ScrollRange)

	gutter := func(line int) string {
		switch {
		case !scrollable:
			return ""
		case line < 0:
			return " "
		case line == bar:
			return scrollbarStyle.Render(scrollbarThumb)
		}
		return mutedStyle.Render(scrollbarTrack)
	}

	selected, ok := t.state.Selected()

	var b strings.Builder
	b.WriteString(border("┌"+strings.Join(dashes, "┬")+"┐") + gutter(-1) + "\n")
	b.WriteString(renderRow(t.headers, headerStyle) + gutter(-1) + "\n")
	b.WriteString(border("├"+strings.Join(dashes, "┼")+"┤") + gutter(-1) + "\n")

	for i := start; i < end; i++ {
		style := lipgloss.NewStyle()
		if ok && i == selected {
			style = selectedStyle
		}
		b.WriteString(renderRow(t.rows[i], style) + gutter(i-start) + "\n")
	}
	if len(t.rows) == 0 {
		empty := make([]string, ncols)
		empty[0] = "no transfers"
		b.WriteString(renderRow(empty, mutedStyle) + "\n")
	}
	b.WriteString(border("└"+strings.Join(dashes, "┴")+"┘") + gutter(-1))

	if len(t.rows) > 0 {
		footer := fmt.Sprintf("rows %d-%d of %d", start+1, end, len(t.rows))
		if ok {
			footer += fmt.Sprintf("  row %d of %d", t.state.ScrollPosition+1, t.state.ScrollRange+1)
		}
		b.WriteString("\n" + mutedStyle.Render(footer))
	}

	return b.String()
}
