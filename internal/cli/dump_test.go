package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhaust/internal/store"
)

// dumpJSON executes the dump command in json format and returns the payload.
func dumpJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestDumpNewRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	data := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath)
	assert.Equal(t, float64(6), data["emitted"])
	assert.Equal(t, float64(6), data["total"])
	assert.Equal(t, true, data["complete"])
	assert.Equal(t, "6", data["declared_count"])

	runID, ok := data["run_id"].(string)
	require.True(t, ok)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), run.Emitted)

	var values []string
	err = st.Values(ctx, runID, func(seq int64, value []byte) error {
		assert.Equal(t, int64(len(values)), seq)
		values = append(values, string(value))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, values, 6)
	assert.Equal(t, `[false,{"variant":0,"value":[]}]`, values[0])
	assert.Equal(t, `[true,{"variant":1,"value":"off"}]`, values[5])
}

func TestDumpResume(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	first := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath, "--limit", "2")
	assert.Equal(t, float64(2), first["emitted"])
	assert.Equal(t, false, first["complete"])

	runID := first["run_id"].(string)

	second := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath, "--run", runID)
	assert.Equal(t, runID, second["run_id"])
	assert.Equal(t, float64(4), second["emitted"])
	assert.Equal(t, float64(6), second["total"])
	assert.Equal(t, true, second["complete"])

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), run.Emitted)

	// The resumed run continues the sequence exactly where it stopped.
	var values []string
	err = st.Values(ctx, runID, func(seq int64, value []byte) error {
		values = append(values, string(value))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, values, 6)
	assert.Equal(t, `[false,{"variant":1,"value":"off"}]`, values[2])
}

func TestDumpResumeCompleteRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	first := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath)
	runID := first["run_id"].(string)

	// Resuming an exhausted run persists nothing and stays complete.
	again := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath, "--run", runID)
	assert.Equal(t, float64(0), again["emitted"])
	assert.Equal(t, float64(6), again["total"])
	assert.Equal(t, true, again["complete"])
}

func TestDumpRunShapeMismatch(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs.db")

	first := dumpJSON(t, "testdata/flags.yaml", "--db", dbPath)
	runID := first["run_id"].(string)

	otherPath := filepath.Join(tmpDir, "other.yaml")
	require.NoError(t, os.WriteFile(otherPath, []byte("shape:\n  kind: bool\n"), 0644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{otherPath, "--db", dbPath, "--run", runID})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeRunMismatch)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDumpUnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDumpCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/flags.yaml", "--db", dbPath, "--run", "no-such-run"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}
