package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTable renders recs as a bordered table.
func printTable(w io.Writer, recs []types.Achievement) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No achievements found.")
		return err
	}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			strconv.Itoa(rec.ID),
			rec.Title,
			string(rec.Category),
			rec.Date.String(),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "CATEGORY", "DATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// printRecord writes one record as JSON or as a short summary line.
func (a *app) printRecord(w io.Writer, rec types.Achievement) error {
	if a.flags.jsonMode {
		return printJSON(w, rec)
	}
	_, err := fmt.Fprintf(w, "#%d %s [%s] %s\n", rec.ID, rec.Title, rec.Category, rec.Date)
	return err
}
