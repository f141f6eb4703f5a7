package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableView collects rows for a rounded go-pretty table. Rows shorter than
// the header are padded with empty cells.
type tableView struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTableView(headers ...string) *tableView {
	return &tableView{headers: headers, right: map[int]bool{}}
}

func (v *tableView) row(cells ...string) *tableView {
	v.rows = append(v.rows, cells)
	return v
}

// alignRight right-aligns the zero-based column, typically counts.
func (v *tableView) alignRight(column int) *tableView {
	v.right[column] = true
	return v
}

func (v *tableView) render() string {
	if len(v.headers) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(cells(v.headers, len(v.headers)))
	for _, r := range v.rows {
		tw.AppendRow(cells(r, len(v.headers)))
	}

	configs := make([]table.ColumnConfig, len(v.headers))
	for i := range v.headers {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if v.right[i] {
			configs[i].Align = text.AlignRight
		}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func cells(values []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		row[i] = ""
		if i < len(values) {
			row[i] = values[i]
		}
	}
	return row
}
