// Package render formats student records for terminal output.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"studentrecords/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const NoRecords = "No student records available."

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
)

// Table renders records as a bordered table in their given order.
func Table(records []model.Student) string {
	if len(records) == 0 {
		return NoRecords
	}
	rows := make([][]string, len(records))
	for i, st := range records {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			st.Name,
			strconv.Itoa(st.RollNumber),
			Marks(st.Marks),
			st.Status().String(),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Roll", "Marks", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 4 && row >= 0 && row < len(rows) && rows[row][4] == model.Fail.String():
				return failStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// Record renders a single record, one field per line.
func Record(st model.Student) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", st.Name)
	fmt.Fprintf(&b, "Roll Number: %d\n", st.RollNumber)
	fmt.Fprintf(&b, "Marks: %s\n", Marks(st.Marks))
	fmt.Fprintf(&b, "Status: %s\n", st.Status())
	return b.String()
}

func Marks(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}
