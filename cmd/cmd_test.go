package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DachengChen/askSQL/applog"
	"github.com/DachengChen/askSQL/db"
)

// runCLI executes the command tree with args against a throwaway home
// directory and returns what was written to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := prepareCLI(t, t.TempDir(), args...)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// prepareCLI resets global flag state and points the command tree at home.
func prepareCLI(t *testing.T, home string, args ...string) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	t.Setenv("ASKSQL_HOME", home)
	for _, k := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "ASKSQL_PROVIDER", "ASKSQL_DB"} {
		t.Setenv(k, "")
	}
	flagDB, flagProvider, flagModel, flagVerbose = "", "", "", false
	seedReset, configForce = false, false
	t.Cleanup(applog.Close)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	return &stdout, &stderr
}

func TestExecute_ClosesLogOnFailure(t *testing.T) {
	home := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "student.db")
	_, stderr := prepareCLI(t, home, "--db", dbPath, "ask", "anything")

	err := Execute()
	require.ErrorIs(t, err, errReported)
	assert.False(t, applog.Active())
	assert.NotContains(t, stderr.String(), "Error:")

	data, err := os.ReadFile(filepath.Join(home, "logs", "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "exit")
	assert.Contains(t, string(data), "reported")
}

func TestExecute_PrintsUnreportedError(t *testing.T) {
	home := t.TempDir()
	_, stderr := prepareCLI(t, home, "ask")

	err := Execute()
	require.Error(t, err)
	assert.False(t, applog.Active())
	assert.Contains(t, stderr.String(), "Error:")
}

func TestAskCommand_Placeholder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "student.db")

	out, _, err := runCLI(t, "--provider", "placeholder", "--db", dbPath,
		"ask", "How many students are there in total?")
	require.NoError(t, err)

	assert.Contains(t, out, "SELECT COUNT(*) FROM STUDENT;")
	assert.Contains(t, out, "COUNT(*)")
	assert.Regexp(t, `\|\s+5\s+\|`, out)
	assert.Contains(t, out, "(1 row)")
}

func TestAskCommand_MissingCredential(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "student.db")

	_, errOut, err := runCLI(t, "--db", dbPath, "ask", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "API key not found.")
	assert.Contains(t, errOut, "GOOGLE_API_KEY")
}

func TestSeedCommand_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "student.db")

	out, _, err := runCLI(t, "--db", dbPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Database populated with sample data (5 rows)")

	out, _, err = runCLI(t, "--db", dbPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "STUDENT already has 5 rows; nothing inserted.")
}

func TestConfigCommand_MasksKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-abcdefghijklmnop")

	out, _, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, `"provider": "gemini"`)
	assert.Contains(t, out, "sk-a…mnop")
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, &db.QueryResult{
		Columns:  []string{"NAME", "MARKS"},
		Rows:     [][]string{{"Jane", "95"}, {"Pranay", "90"}},
		RowCount: 2,
		Status:   "(2 rows)",
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Pranay")
	assert.Contains(t, out, "(2 rows)")

	buf.Reset()
	renderTable(&buf, &db.QueryResult{Status: "OK"})
	assert.Equal(t, "OK\n", buf.String())
}
