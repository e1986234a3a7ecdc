package cmd

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestWriteTable_AlignsStyledHeader(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	style := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	var buf bytes.Buffer

	err := writeTable(&buf, style,
		[]string{"DATE", "VEHICLE", "LITERS"},
		[][]string{
			{"2026-01-02 10:00", "golf", "40.00"},
			{"2026-01-03 11:30", "transit", "7.50"},
		},
	)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "\x1b[", "header should be styled")

	lines := strings.Split(strings.TrimRight(ansiEscape.ReplaceAllString(buf.String(), ""), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Index(lines[0], "VEHICLE"), strings.Index(lines[1], "golf"))
	assert.Equal(t, strings.Index(lines[0], "LITERS"), strings.Index(lines[1], "40.00"))
	assert.Equal(t, strings.Index(lines[0], "LITERS"), strings.Index(lines[2], "7.50"))
}

func TestWriteTable_PlainStyle(t *testing.T) {
	var buf bytes.Buffer

	err := writeTable(&buf, lipgloss.NewStyle(), []string{"A", "BB"}, [][]string{{"xyz", "1"}})
	require.NoError(t, err)
	assert.Equal(t, "A    BB\nxyz  1\n", buf.String())
}
