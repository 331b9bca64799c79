package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/flags.yaml"})

	err := cmd.Execute()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_flags_text", buf.Bytes())
}

func TestListJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/flags.yaml"})

	err := cmd.Execute()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_flags_json", buf.Bytes())
}

func TestListLimit(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"testdata/flags.yaml", "--limit", "2"})

	err := cmd.Execute()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[false,{"variant":0,"value":[]}]`, lines[0])
	assert.Equal(t, `[false,{"variant":1,"value":"on"}]`, lines[1])
}

// Listing twice must produce identical output: enumeration always restarts
// from the beginning.
func TestListRestartable(t *testing.T) {
	run := func() string {
		buf := &bytes.Buffer{}
		rootOpts := &RootOptions{Format: "text"}
		cmd := NewListCommand(rootOpts)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"testdata/flags.yaml"})
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	assert.Equal(t, run(), run())
}
