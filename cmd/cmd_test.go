package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inovacc/fuelog/internal/application"
	"github.com/inovacc/fuelog/internal/database"
	"github.com/inovacc/fuelog/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fuelog-cmd-*")
	if err != nil {
		panic(err)
	}

	// keep the user's config.ini out of the tests
	_ = os.Setenv("XDG_CONFIG_HOME", dir)
	_ = os.Setenv(application.EnvHome, dir)
	_ = os.Unsetenv(params.EnvLogLevel)

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

func useDatabase(t *testing.T, mode params.Mode) string {
	t.Helper()

	closeShared := func() {
		if s, ok := database.ResetSlot(database.DefaultKey).(database.Store); ok {
			_ = s.Close()
		}
	}

	closeShared()
	t.Cleanup(closeShared)

	url := "sqlite://" + filepath.Join(t.TempDir(), "fuelog.db")
	t.Setenv(params.EnvDatabaseURL, url)
	t.Setenv(params.EnvMode, string(mode))

	return url
}

func resetFlags() {
	entryVehicle, entryLiters, entryPrice, entryOdometer, entryStation, entryAt = "", 0, 0, 0, "", ""
	listVehicle = ""
	removeYes = false
	helloName = "world"
	dbShowMetrics = false
	commandsJSON = false
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags()

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func addedID(t *testing.T, out string) string {
	t.Helper()

	rest, ok := strings.CutPrefix(out, "Added: ")
	require.True(t, ok, "unexpected output %q", out)

	id, _, _ := strings.Cut(rest, " ")

	return id
}

func TestHello(t *testing.T) {
	out, err := execute(t, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", out)

	out, err = execute(t, "", "hello", "--name", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ana!\n", out)
}

func TestEntryLifecycle(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)

	out, err := execute(t, "", "entry", "add", "--vehicle", "golf", "--liters", "40", "--price", "1.5", "--odometer", "1000", "--at", "2026-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "(60.00 total)")

	id := addedID(t, out)

	_, err = execute(t, "", "entry", "add", "--vehicle", "transit", "--liters", "10", "--price", "2", "--at", "2026-01-03")
	require.NoError(t, err)

	out, err = execute(t, "", "entry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries, 50.00 liters, 80.00 total")
	assert.Contains(t, out, id)

	out, err = execute(t, "", "entry", "list", "--vehicle", "golf")
	require.NoError(t, err)
	assert.Contains(t, out, "1 entries")

	out, err = execute(t, "n\n", "entry", "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = execute(t, "", "entry", "rm", "-y", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed: "+id)

	_, err = execute(t, "", "entry", "rm", "-y", id)
	require.ErrorIs(t, err, database.ErrNotFound)

	out, err = execute(t, "", "entry", "list", "--vehicle", "golf")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries found.")
}

func TestEntryAdd_Validation(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)

	tests := []struct {
		name string
		args []string
	}{
		{"missing vehicle", []string{"--liters", "10"}},
		{"zero liters", []string{"--vehicle", "golf"}},
		{"negative price", []string{"--vehicle", "golf", "--liters", "10", "--price", "-1"}},
		{"bad date", []string{"--vehicle", "golf", "--liters", "10", "--at", "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", append([]string{"entry", "add"}, tt.args...)...)
			require.Error(t, err)
		})
	}
}

func TestDatabaseUnset(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)
	t.Setenv(params.EnvDatabaseURL, "")

	_, err := execute(t, "", "entry", "list")
	require.ErrorIs(t, err, database.ErrEmptyURL)

	out, err := execute(t, "", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "unavailable")
}

func TestInfo(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)

	out, err := execute(t, "", "info")
	require.NoError(t, err)

	assert.Contains(t, out, "fuelog v")
	assert.Contains(t, out, "development")
	assert.Contains(t, out, "verbose (query,error,warn)")
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "database reachable")
}

func TestDBPing_Metrics(t *testing.T) {
	useDatabase(t, params.ModeProduction)

	out, err := execute(t, "", "db", "ping", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "sqlite database is reachable")
	assert.Contains(t, out, `fuelog_db_client_constructions_total{key="fuelog.database"}`)
}

func TestCommands_JSON(t *testing.T) {
	out, err := execute(t, "", "commands", "--json")
	require.NoError(t, err)

	var infos []CommandInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))

	paths := make(map[string]CommandInfo, len(infos))
	for _, info := range infos {
		paths[info.Path] = info
	}

	require.Contains(t, paths, "fuelog entry add")
	require.Contains(t, paths, "fuelog db ping")

	var names []string
	for _, f := range paths["fuelog entry add"].Flags {
		names = append(names, f.Name)
	}

	assert.ElementsMatch(t, []string{"vehicle", "liters", "price", "odometer", "station", "at"}, names)
}

func TestCommands_Text(t *testing.T) {
	out, err := execute(t, "", "commands")
	require.NoError(t, err)
	assert.Contains(t, out, "fuelog entry remove")
	assert.Contains(t, out, "-y, --yes")
}

func TestFormatLogLevels(t *testing.T) {
	assert.Equal(t, "none", formatLogLevels(nil))
	assert.Equal(t, "verbose (query,error,warn)", formatLogLevels(database.LogLevelsFor(params.ModeDevelopment)))
	assert.Equal(t, "errors only (error)", formatLogLevels(database.LogLevelsFor(params.ModeProduction)))
}

func TestParseFilledAt(t *testing.T) {
	got, err := parseFilledAt("2026-03-14T08:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)))

	got, err = parseFilledAt("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Day())

	before := time.Now()
	got, err = parseFilledAt("")
	require.NoError(t, err)
	assert.False(t, got.Before(before))

	_, err = parseFilledAt("14/03/2026")
	require.Error(t, err)
}

func TestEntryExportImport(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)

	_, err := execute(t, "", "entry", "add", "--vehicle", "golf", "--liters", "30", "--price", "1.8")
	require.NoError(t, err)

	_, err = execute(t, "", "entry", "add", "--vehicle", "golf", "--liters", "20", "--price", "1.9")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "backup", "entries.json")

	out, err := execute(t, "", "entry", "export", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 entries")

	// import into a fresh database
	useDatabase(t, params.ModeDevelopment)

	out, err = execute(t, "", "entry", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 entries")

	// same IDs, so a second import is a no-op
	_, err = execute(t, "", "entry", "import", file)
	require.NoError(t, err)

	out, err = execute(t, "", "entry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 entries, 50.00 liters")
}

func TestEntryImport_RejectsForeignFile(t *testing.T) {
	useDatabase(t, params.ModeDevelopment)

	file := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"app":"otherapp","entries":[]}`), 0o600))

	_, err := execute(t, "", "entry", "import", file)
	require.Error(t, err)
}
