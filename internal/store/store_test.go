package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestCreateRun_TimeOrderedIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "digest-a", "42")
	require.NoError(t, err)

	parsed, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, "digest-a", run.ShapeDigest)
	assert.Equal(t, "42", run.DeclaredCount)
	assert.Zero(t, run.Emitted)
}

func TestGetRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRun(ctx, "digest-b", "unknown")
	require.NoError(t, err)

	got, err := s.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestAppendValues_SequencesFromZero(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "d", "4")
	require.NoError(t, err)

	require.NoError(t, s.AppendValues(ctx, run.ID, [][]byte{[]byte(`"a"`), []byte(`"b"`)}))
	require.NoError(t, s.AppendValues(ctx, run.ID, [][]byte{[]byte(`"c"`)}))

	var seqs []int64
	var vals []string
	err = s.Values(ctx, run.ID, func(seq int64, value []byte) error {
		seqs = append(seqs, seq)
		vals = append(vals, string(value))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, seqs, "seqs are dense across batches")
	assert.Equal(t, []string{`"a"`, `"b"`, `"c"`}, vals)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Emitted)
}

func TestAppendValues_EmptyBatchIsNoop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "d", "0")
	require.NoError(t, err)
	require.NoError(t, s.AppendValues(ctx, run.ID, nil))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Emitted)
}

func TestAppendValues_UnknownRun(t *testing.T) {
	s := openTestStore(t)
	err := s.AppendValues(context.Background(), "ghost", [][]byte{[]byte("1")})
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx, "d1", "1")
	require.NoError(t, err)
	second, err := s.CreateRun(ctx, "d2", "2")
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID, "UUIDv7 ids sort by creation time")
	assert.Equal(t, first.ID, runs[1].ID)
}
