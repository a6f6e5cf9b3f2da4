package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a light-styled table writer with the given header
func newTable(cols ...string) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	w.AppendHeader(row)
	return w
}

// limitColumn wraps the 1-based column number beyond maxWidth
func limitColumn(w table.Writer, number, maxWidth int) {
	w.SetColumnConfigs([]table.ColumnConfig{{
		Number:           number,
		WidthMax:         maxWidth,
		WidthMaxEnforcer: text.WrapSoft,
	}})
}
