// Package grid renders allocated table views as bordered grids on a text
// output stream. Styling degrades automatically with the terminal's color
// profile via termenv.
package grid

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/aretw0/flume/pkg/table"
)

var headerStyle = table.Style{Bold: true, Color: "green"}

// Renderer writes views to one output stream.
type Renderer struct {
	w   io.Writer
	out *termenv.Output
}

// New creates a renderer targeting w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, out: termenv.NewOutput(w)}
}

// Render writes the view as a bordered grid. Empty views write nothing.
func (r *Renderer) Render(v *table.View) error {
	if len(v.Entries) == 0 {
		return nil
	}

	// Rows carry a leading index cell the header list doesn't; pad every
	// line to the widest so the grid stays rectangular.
	columns := len(v.Headers)
	for _, row := range v.Entries {
		if len(row) > columns {
			columns = len(row)
		}
	}

	header := make([]table.Cell, 0, columns)
	if len(v.Headers) < columns {
		header = append(header, table.Cell{})
	}
	for _, h := range v.Headers {
		header = append(header, table.Cell{Text: h, Style: headerStyle})
	}

	widths := columnWidths(columns, header, v.Entries)

	var sb strings.Builder
	rule(&sb, widths, "┬")
	if !v.SuppressHeader() {
		r.row(&sb, header, widths)
		rule(&sb, widths, "┼")
	}
	for _, cells := range v.Entries {
		r.row(&sb, cells, widths)
	}
	rule(&sb, widths, "┴")

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// columnWidths measures the widest line of every column, headers included.
// Cells may hold wrapped multi-line text.
func columnWidths(columns int, header []table.Cell, entries [][]table.Cell) []int {
	widths := make([]int, columns)
	measure := func(cells []table.Cell) {
		for i, c := range cells {
			for _, line := range strings.Split(c.Text, "\n") {
				if w := runewidth.StringWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	measure(header)
	for _, row := range entries {
		measure(row)
	}
	return widths
}

// rule writes a horizontal border: ─ runs joined by the given junction,
// with space edges and one cell of padding per side.
func rule(sb *strings.Builder, widths []int, junction string) {
	sb.WriteString(" ")
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(junction)
		}
		sb.WriteString(strings.Repeat("─", w+2))
	}
	sb.WriteString(" \n")
}

// row writes one logical row, which spans several physical lines when any
// of its cells wrapped.
func (r *Renderer) row(sb *strings.Builder, cells []table.Cell, widths []int) {
	lines := make([][]string, len(widths))
	height := 1
	for i := range widths {
		if i < len(cells) {
			lines[i] = strings.Split(cells[i].Text, "\n")
		} else {
			lines[i] = []string{""}
		}
		if len(lines[i]) > height {
			height = len(lines[i])
		}
	}

	for ln := 0; ln < height; ln++ {
		for i, w := range widths {
			if i > 0 {
				sb.WriteString("│")
			}
			text := ""
			if ln < len(lines[i]) {
				text = lines[i][ln]
			}
			style := table.Style{}
			if i < len(cells) {
				style = cells[i].Style
			}
			sb.WriteString(" ")
			sb.WriteString(r.pad(text, w, style))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
}

// pad aligns text within width and applies its style. Padding is computed
// on the plain text so ANSI sequences never skew the layout.
func (r *Renderer) pad(text string, width int, style table.Style) string {
	gap := width - runewidth.StringWidth(text)
	if gap < 0 {
		gap = 0
	}
	styled := r.styled(text, style)
	switch style.Align {
	case table.AlignRight:
		return strings.Repeat(" ", gap) + styled
	case table.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + styled + strings.Repeat(" ", gap-left)
	default:
		return styled + strings.Repeat(" ", gap)
	}
}

func (r *Renderer) styled(text string, style table.Style) string {
	if text == "" {
		return text
	}
	s := r.out.String(text)
	if style.Bold {
		s = s.Bold()
	}
	if code, ok := colorCode(style.Color); ok {
		s = s.Foreground(r.out.Color(code))
	}
	return s.String()
}

// colorCode maps compact color names to ANSI palette indices.
func colorCode(name string) (string, bool) {
	switch name {
	case "b", "black":
		return "0", true
	case "r", "red":
		return "1", true
	case "g", "green":
		return "2", true
	case "y", "yellow":
		return "3", true
	case "u", "blue":
		return "4", true
	case "m", "magenta":
		return "5", true
	case "c", "cyan":
		return "6", true
	case "w", "white":
		return "7", true
	case "br", "bright red":
		return "9", true
	case "bg", "bright green":
		return "10", true
	case "by", "bright yellow":
		return "11", true
	case "bu", "bright blue":
		return "12", true
	case "bm", "bright magenta":
		return "13", true
	case "bc", "bright cyan":
		return "14", true
	case "bw", "bright white":
		return "15", true
	default:
		return "", false
	}
}
