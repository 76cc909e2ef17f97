package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a bordered table whose column widths grow to fit their cells.
type Table struct {
	title      string
	headers    []string
	rows       []tableRow
	widths     []int
	right      map[int]bool
	hideHeader bool
	minWidth   int
}

// tableRow is one data row. Active rows are highlighted, e.g. the host platform.
type tableRow struct {
	cells  []string
	active bool
}

// NewTable creates a new table with the given headers
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns a column, for sizes and durations.
func (t *Table) AlignRight(columns ...int) {
	for _, c := range columns {
		if c >= 0 && c < len(t.headers) {
			t.right[c] = true
		}
	}
}

// SetTitle sets a title that spans all columns at the top of the table
func (t *Table) SetTitle(title string) {
	t.title = title
}

// HideHeader hides the column header row
func (t *Table) HideHeader() {
	t.hideHeader = true
}

// SetMinWidth sets a minimum width for the table content
func (t *Table) SetMinWidth(width int) {
	t.minWidth = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.add(cells, false)
}

// AddActiveRow adds a highlighted row to the table
func (t *Table) AddActiveRow(cells ...string) {
	t.add(cells, true)
}

// add pads or truncates cells to the header count.
func (t *Table) add(cells []string, active bool) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i >= len(cells) {
			continue
		}
		row[i] = cells[i]
		// lipgloss.Width ignores ANSI sequences of pre-styled cells
		if w := lipgloss.Width(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, tableRow{cells: row, active: active})
}

// cellStyle returns the style of column i.
func (t *Table) cellStyle(base lipgloss.Style, i int) lipgloss.Style {
	style := base.Width(t.widths[i] + 2)
	if t.right[i] {
		style = style.Align(lipgloss.Right)
	}
	return style
}

// Render returns the rendered table as a string
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	initStyles()

	total := t.fitMinWidth()

	var lines []string
	if t.title != "" {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Width(total).
			Align(lipgloss.Center)
		lines = append(lines, title.Render(t.title), rule(total))
	}

	if !t.hideHeader {
		var header, separator strings.Builder
		for i, h := range t.headers {
			header.WriteString(t.cellStyle(StyleTableHeader, i).Render(h))
			separator.WriteString(rule(t.widths[i] + 2))
		}
		lines = append(lines, header.String(), separator.String())
	}

	for _, row := range t.rows {
		var line strings.Builder
		for i, cell := range row.cells {
			style := t.cellStyle(StyleTableCell, i)
			if row.active {
				style = style.Inherit(StyleTableRowActive)
			}
			line.WriteString(style.Render(cell))
		}
		lines = append(lines, line.String())
	}

	return StyleTableBorder.Render(strings.Join(lines, "\n"))
}

// fitMinWidth widens the last column up to the minimum width and
// returns the resulting content width.
func (t *Table) fitMinWidth() int {
	total := 0
	for _, w := range t.widths {
		total += w + 2
	}
	if t.minWidth > total {
		t.widths[len(t.widths)-1] += t.minWidth - total
		total = t.minWidth
	}
	return total
}

func rule(width int) string {
	return StyleMuted.Render(strings.Repeat("─", width))
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.rows)
}
