// Package table turns a stream of heterogeneous values into fixed-width,
// column-homogeneous pages. It holds the column-width allocator (View) and
// the paginating sink stage; actual terminal output is delegated to an
// injected renderer.
package table

// Align positions a cell's text within its allocated column width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style is the compact per-cell style tag consumed by the renderer.
type Style struct {
	Bold  bool
	Color string // named color, empty for the terminal default
	Align Align
}

// Cell is one rendered table cell: display text plus its style tag.
type Cell struct {
	Text  string
	Style Style
}

// IndexStyle marks the synthetic leading index column: bold, green,
// right-aligned, distinct from data cells.
var IndexStyle = Style{Bold: true, Color: "green", Align: AlignRight}

// EllipsisStyle marks the literal column appended when the table is wider
// than the terminal allows.
var EllipsisStyle = Style{Align: AlignCenter}
