package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/fuelog/internal/database"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// formatLogLevels returns a human-readable description of client log levels
func formatLogLevels(levels database.LogLevels) string {
	switch {
	case len(levels) == 0:
		return "none"
	case levels.Has(database.LogQuery):
		return "verbose (" + levels.String() + ")"
	default:
		return "errors only (" + levels.String() + ")"
	}
}

// parseFilledAt accepts RFC3339 or a plain date; empty means now
func parseFilledAt(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 or YYYY-MM-DD", value)
}

// promptConfirm asks the user for confirmation and returns true if they confirm
func promptConfirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	var response string

	_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)

	return response == "y" || response == "Y"
}

func printField(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), valueStyle.Render(value))
}

// writeTable aligns the plain cells first and styles the header line after,
// since tabwriter would count escape sequences as width.
func writeTable(w io.Writer, style lipgloss.Style, header []string, rows [][]string) error {
	var buf bytes.Buffer

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	first, rest, _ := strings.Cut(buf.String(), "\n")

	_, err := fmt.Fprintf(w, "%s\n%s", style.Render(strings.TrimRight(first, " ")), rest)

	return err
}
