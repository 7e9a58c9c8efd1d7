package tabular

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render formats the dataset as a text table the way a dataframe prints,
// with a leading row index. When the dataset has more than maxRows rows only
// the head and tail are shown, maxRows <= 0 renders everything.
func Render(d *Dataset, indexName string, indexStart int, maxRows int) string {
	t := table.NewWriter()

	header := table.Row{indexName}
	for _, name := range d.Names() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	appendRow := func(r int) {
		row := table.Row{strconv.Itoa(indexStart + r)}
		for _, cell := range d.Record(r) {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	if maxRows <= 0 || d.rows <= maxRows {
		for r := 0; r < d.rows; r++ {
			appendRow(r)
		}
	} else {
		head := maxRows / 2
		tail := maxRows - head
		for r := 0; r < head; r++ {
			appendRow(r)
		}
		ellipsis := table.Row{"..."}
		for range d.columns {
			ellipsis = append(ellipsis, "...")
		}
		t.AppendRow(ellipsis)
		for r := d.rows - tail; r < d.rows; r++ {
			appendRow(r)
		}
	}

	t.AppendFooter(table.Row{"", strconv.Itoa(d.rows) + " rows x " + strconv.Itoa(len(d.columns)) + " columns"})
	t.SetStyle(table.StyleRounded)
	return t.Render()
}
