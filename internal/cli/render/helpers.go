package render

import (
	"regexp"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableData is rows of already styled cells
type TableData [][]string

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// FormatSuccess prefixes message with a green check
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// visibleWidth is the printed width of a cell once colour codes are removed
func visibleWidth(cell string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(cell, ""))
}

// columnWidths returns the widest cell of each column across all tables, so
// tables printed one after another line up
func columnWidths(tables ...TableData) []int {
	var widths []int
	for _, rows := range tables {
		for _, row := range rows {
			for i, cell := range row {
				if i == len(widths) {
					widths = append(widths, 0)
				}
				widths[i] = max(widths[i], visibleWidth(cell))
			}
		}
	}
	return widths
}

// renderTable prints rows without borders or separators, each column padded to
// widths and each row indented
func renderTable(rows TableData, widths []int, indent string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	opts := &t.Style().Options
	opts.DrawBorder = false
	opts.SeparateColumns = false
	opts.SeparateHeader = false
	opts.SeparateRows = false
	t.Style().Box = table.BoxStyle{PaddingRight: "   "}

	configs := make([]table.ColumnConfig, len(widths))
	for i, w := range widths {
		if i == 0 {
			w += utf8.RuneCountInString(indent)
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, WidthMin: w, WidthMax: w}
	}
	t.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		if len(r) > 0 {
			r[0] = indent + row[0]
		}
		t.AppendRow(r)
	}
	return t.Render()
}
