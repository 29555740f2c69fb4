package client

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/assetops/backend/internal/application/listview"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "2"}
	colorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}

	StyleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	StyleTitle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(colorMuted)

	styleHeader = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(colorMuted)
)

// maxCellWidth truncates long values so wide records still fit a terminal
const maxCellWidth = 40

// FormatError renders a failure line
func FormatError(msg string) string {
	return StyleError.Render("✘ " + msg)
}

// FormatSuccess renders a confirmation line
func FormatSuccess(msg string) string {
	return StyleSuccess.Render("✔ " + msg)
}

// FormatWarning renders a warning line
func FormatWarning(msg string) string {
	return StyleWarning.Render("⚠ " + msg)
}

// EmptyMessage is what a list prints when nothing matched
func EmptyMessage(resource string) string {
	return fmt.Sprintf("No %s found", strings.ReplaceAll(resource, "-", " "))
}

// RenderPage writes one page of records as a table. With no columns the
// columns are inferred from the rows.
func RenderPage(w io.Writer, resource string, page listview.Page, cols []listview.Column) error {
	if page.Total == 0 || len(page.Rows) == 0 {
		_, err := fmt.Fprintln(w, FormatWarning(EmptyMessage(resource)))
		return err
	}
	if len(cols) == 0 {
		cols = listview.InferColumns(page.Rows)
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Title
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	for _, rec := range page.Rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = truncate(listview.Cell(rec, col.Key), maxCellWidth)
		}
		t.Row(cells...)
	}

	footer := fmt.Sprintf("Page %d of %d (%d %s)", page.Page, page.TotalPages, page.Total,
		strings.ReplaceAll(resource, "-", " "))
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), StyleMuted.Render(footer))
	return err
}

// RenderRecord writes one record as a field/value table sorted by field
func RenderRecord(w io.Writer, title string, rec listview.Record) error {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return styleHeader
			}
			return styleCell
		})
	for _, k := range keys {
		t.Row(listview.TitleFor(k), listview.Cell(rec, k))
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", StyleTitle.Render(title), t.Render())
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
