package table

import (
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/aretw0/flume/pkg/value"
)

const (
	// minWidth is the floor applied to the terminal width budget so
	// degenerate terminals still get a usable layout.
	minWidth = 20

	// separatorWidth is the space a column separator occupies.
	separatorWidth = 3

	// noOverageWidth stands in for "unbounded" when every column fits.
	noOverageWidth = 99999

	ellipsis = "..."
)

// View is a fully allocated page layout: the header names and one row of
// cells per input value, each row led by a synthetic index cell. Cell text
// of over-budget columns is already word-wrapped to its allocated width.
type View struct {
	Headers []string
	Entries [][]Cell
}

// NewView computes the layout for one page of values. startIdx seeds the
// index column; width is the terminal budget, floored at 20. It returns nil
// for an empty page.
//
// The budget partition is deliberately a two-pass approximation, not a
// fixed-point solver: columns fitting the naive even share keep their
// natural width, the rest split what remains, and a single refinement pass
// folds back columns that turn out to fit the split. Pathological width
// distributions can leave slack or slight overflow; that is accepted.
func NewView(values []value.Value, startIdx, width int) *View {
	if len(values) == 0 {
		return nil
	}
	if width < minWidth {
		width = minWidth
	}

	headers := mergeColumns(values)
	entries := buildEntries(values, &headers, startIdx)
	widths := naturalWidths(headers, entries)

	headers, entries = maybeTruncateColumns(headers, entries, width)
	headersLen := len(headers)

	naive := (width - separatorWidth*(headersLen-1)) / headersLen

	space := measureSpace(widths, naive, headersLen)
	maxColumnWidth := space.maxWidth(width)

	// The even split frees space the first pass charged to overage
	// columns that actually fit it; fold those back in and split once
	// more. Exactly one refinement pass, never a fixed point.
	space = space.refine(widths, naive, maxColumnWidth, headersLen)
	maxColumnWidth = space.maxWidth(width)

	wrapCells(headers, entries, widths, naive, maxColumnWidth)

	return &View{Headers: headers, Entries: entries}
}

// SuppressHeader reports whether the header row should be omitted: a plain
// list of scalars renders as a bare index/value grid.
func (v *View) SuppressHeader() bool {
	return (len(v.Headers) == 2 && v.Headers[1] == "") ||
		(len(v.Headers) == 1 && v.Headers[0] == "")
}

// mergeColumns unions record field names across the page in first-seen
// order. Any non-record value contributes a single anonymous column.
func mergeColumns(values []value.Value) []string {
	var headers []string
	seen := make(map[string]bool)

	for _, v := range values {
		cols := v.Columns()
		if len(cols) == 0 {
			if !seen[""] {
				seen[""] = true
				headers = append(headers, "")
			}
			continue
		}
		for _, col := range cols {
			if !seen[col] {
				seen[col] = true
				headers = append(headers, col)
			}
		}
	}
	return headers
}

// buildEntries produces the cell matrix, one row per value, prepending the
// index cell to each row.
func buildEntries(values []value.Value, headers *[]string, startIdx int) [][]Cell {
	if len(*headers) == 0 {
		*headers = append(*headers, "")
	}

	entries := make([][]Cell, 0, len(values))
	for idx, v := range values {
		row := make([]Cell, 0, len(*headers)+1)
		row = append(row, Cell{Text: strconv.Itoa(startIdx + idx), Style: IndexStyle})

		for _, h := range *headers {
			if h == "" {
				if v.Kind() == value.KindRecord {
					row = append(row, Cell{})
				} else {
					row = append(row, Cell{Text: v.String()})
				}
				continue
			}
			if v.Kind() == value.KindRecord {
				if field, ok := v.Get(h); ok {
					row = append(row, Cell{Text: field.String()})
				} else {
					row = append(row, Cell{})
				}
			} else {
				row = append(row, Cell{Text: v.String()})
			}
		}
		entries = append(entries, row)
	}
	return entries
}

// naturalWidths measures each column's widest cell, header included. The
// scan starts at the index cell, mirroring the layout the budget passes
// operate on.
func naturalWidths(headers []string, entries [][]Cell) []int {
	widths := make([]int, len(headers))
	for i := range headers {
		max := 0
		for _, row := range entries {
			if w := runewidth.StringWidth(row[i].Text); w > max {
				max = w
			}
		}
		if hw := runewidth.StringWidth(headers[i]); hw > max {
			max = hw
		}
		widths[i] = max
	}
	return widths
}

// maybeTruncateColumns hard-truncates the table when it holds more columns
// than the width budget can carry (one per ten cells), appending a literal
// ellipsis column. Truncated data is discarded, not deferred.
func maybeTruncateColumns(headers []string, entries [][]Cell, width int) ([]string, [][]Cell) {
	maxColumns := width / 10
	if maxColumns >= len(headers) {
		return headers, entries
	}

	headers = append(headers[:maxColumns], ellipsis)
	for i, row := range entries {
		entries[i] = append(row[:maxColumns], Cell{Text: ellipsis, Style: EllipsisStyle})
	}
	return headers, entries
}

// columnSpace tracks the budget split between underage columns (which keep
// their natural width) and overage columns (which share what is left).
type columnSpace struct {
	numOverages         int
	underageSum         int
	overageSeparatorSum int
}

func measureSpace(widths []int, naive, headersLen int) columnSpace {
	var space columnSpace
	for i, w := range widths[:headersLen] {
		if w > naive {
			space.numOverages++
			if i != headersLen-1 {
				space.overageSeparatorSum += separatorWidth
			}
			if i == 0 {
				space.overageSeparatorSum++
			}
		} else {
			space.underageSum += w
			if i != headersLen-1 {
				space.underageSum += separatorWidth
			}
			if i == 0 {
				space.underageSum++
			}
		}
	}
	return space
}

// refine reclassifies overage columns whose natural width fits the split
// computed from the first pass, folding their exact widths into the budget.
func (s columnSpace) refine(widths []int, naive, maxColumnWidth, headersLen int) columnSpace {
	next := columnSpace{underageSum: s.underageSum}
	for i, w := range widths[:headersLen] {
		if w <= naive {
			continue
		}
		if w <= maxColumnWidth {
			next.underageSum += w
			if i != headersLen-1 {
				next.underageSum += separatorWidth
			}
			if i == 0 {
				next.underageSum++
			}
		} else {
			next.numOverages++
			if i != headersLen-1 {
				next.overageSeparatorSum += separatorWidth
			}
			if i == 0 {
				next.overageSeparatorSum++
			}
		}
	}
	return next
}

func (s columnSpace) maxWidth(width int) int {
	if s.numOverages > 0 {
		return (width - 1 - s.underageSum - s.overageSeparatorSum) / s.numOverages
	}
	return noOverageWidth
}

// wrapCells word-wraps the header and every cell of columns still over
// budget. Wrapping breaks at whitespace only; words are never split.
func wrapCells(headers []string, entries [][]Cell, widths []int, naive, maxColumnWidth int) {
	if maxColumnWidth <= 0 {
		return
	}
	for i := range headers {
		if widths[i] <= naive {
			continue
		}
		headers[i] = wordwrap.String(headers[i], maxColumnWidth)
		for _, row := range entries {
			row[i].Text = wordwrap.String(row[i].Text, maxColumnWidth)
		}
	}
}
