package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DachengChen/askSQL/db"
)

const maxColumnWidth = 40

// formatResult renders a query result as aligned table lines followed by
// the status line.
func formatResult(r *db.QueryResult) []string {
	if r == nil {
		return nil
	}
	if len(r.Columns) == 0 {
		return []string{StyleDimmed.Render(r.Status)}
	}

	// Calculate column widths
	widths := make([]int, len(r.Columns))
	for i, col := range r.Columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range r.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	var lines []string
	header := ""
	separator := ""
	for i, col := range r.Columns {
		header += " " + pad(truncate(col, widths[i]), widths[i]) + " │"
		separator += strings.Repeat("─", widths[i]+2) + "┼"
	}
	lines = append(lines, StyleSuccess.Render(strings.TrimSuffix(header, "│")))
	lines = append(lines, StyleDimmed.Render(strings.TrimSuffix(separator, "┼")))

	for _, row := range r.Rows {
		line := ""
		for i, cell := range row {
			if i < len(widths) {
				line += " " + pad(truncate(cell, widths[i]), widths[i]) + " │"
			}
		}
		lines = append(lines, strings.TrimSuffix(line, "│"))
	}

	lines = append(lines, "")
	lines = append(lines, StyleDimmed.Render(r.Status))
	return lines
}

// studentsResult shapes table rows like a SELECT * result.
func studentsResult(students []db.Student) *db.QueryResult {
	r := &db.QueryResult{Columns: []string{"NAME", "CLASS", "SECTION", "MARKS"}}
	for _, s := range students {
		r.Rows = append(r.Rows, []string{s.Name, s.Class, s.Section, fmt.Sprintf("%d", s.Marks)})
	}
	r.RowCount = len(r.Rows)
	r.Status = fmt.Sprintf("(%d row%s)", r.RowCount, plural(r.RowCount))
	return r
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
