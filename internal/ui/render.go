// Package ui renders the todo CLI: task tables, status lines and the
// interactive forms used when credentials or titles are not given as flags.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/redmonkez12/go-todo-client/internal/task"
)

const (
	checkMark = "✓"
	emptyList = "No tasks yet. Add one with `todo add`."
)

// RenderTasks renders tasks as a table, or the empty-state line
func RenderTasks(tasks []task.Task) string {
	if len(tasks) == 0 {
		return subtleStyle.Render(emptyList)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = checkMark
		}
		rows = append(rows, []string{done, t.Title, t.DescriptionText(), t.ID})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("", "TITLE", "DESCRIPTION", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(tasks) && tasks[row].Completed && col == 1 {
				return doneCellStyle
			}
			return cellStyle
		})

	return tbl.Render()
}

// RenderTask renders a single task with all of its fields
func RenderTask(t task.Task) string {
	status := "open"
	if t.Completed {
		status = checkMark + " done"
	}
	desc := t.DescriptionText()
	if desc == "" {
		desc = subtleStyle.Render("(none)")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Status:      %s\n", status)
	fmt.Fprintf(&b, "  Description: %s\n", desc)
	fmt.Fprintf(&b, "  ID:          %s\n", t.ID)
	fmt.Fprintf(&b, "  Created:     %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  Updated:     %s", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return b.String()
}

// PrintTasks writes the task table
func PrintTasks(w io.Writer, tasks []task.Task) {
	fmt.Fprintln(w, RenderTasks(tasks))
}

// PrintSuccess prints a success line
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

// PrintInfo prints a dimmed informational line
func PrintInfo(w io.Writer, msg string) {
	fmt.Fprintln(w, subtleStyle.Render(msg))
}

// PrintError prints an error message
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+msg))
}

// PrintLoginHint tells the user their session is missing or expired
func PrintLoginHint(w io.Writer) {
	fmt.Fprintln(w, hintStyle.Render("You are not logged in or your session expired. Run `todo login`."))
}
