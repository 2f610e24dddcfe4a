package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable renders headers and rows with go-pretty. Columns named in
// rightAligned (by header) are right-aligned, for sizes and counts.
func renderTable(headers []string, rows [][]string, rightAligned ...string) string {
	if len(headers) == 0 {
		return ""
	}

	right := make(map[string]bool, len(rightAligned))
	for _, h := range rightAligned {
		right[h] = true
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i, h := range headers {
		header[i] = h
		align := text.AlignLeft
		if right[h] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
