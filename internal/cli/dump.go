package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"exhaust/internal/store"
)

// dumpBatchSize is the number of values committed per transaction.
const dumpBatchSize = 256

// DumpResult is the JSON payload of the dump command.
type DumpResult struct {
	RunID         string `json:"run_id"`
	ShapeDigest   string `json:"shape_digest"`
	DeclaredCount string `json:"declared_count"`
	// Emitted is how many values this invocation persisted.
	Emitted uint64 `json:"emitted"`
	// Total is how many values the run holds afterwards.
	Total uint64 `json:"total"`
	// Complete reports whether the enumeration ran to exhaustion.
	Complete bool `json:"complete"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dbPath string
		limit  uint64
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "dump <shape-file>",
		Short: "Persist a shape's values into a SQLite run store",
		Long: `Enumerate a shape and persist the values into a SQLite database.

Each invocation either starts a new run or, with --run, continues an
existing one. Enumeration order is deterministic and restartable, so a
resumed run re-enumerates from the start and skips the already-persisted
prefix with forward pulls - stored values are never re-read or re-written.
Use --limit to dump a bounded slice per invocation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], dbPath, limit, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the run database (required)")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "persist at most this many values this invocation (0 = no limit)")
	cmd.Flags().StringVar(&runID, "run", "", "resume an existing run instead of starting a new one")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDump(opts *RootOptions, shapePath, dbPath string, limit uint64, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loaded, err := loadShape(formatter, shapePath)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
	}
	defer st.Close()

	ctx := cmd.Context()

	var run *store.Run
	if runID == "" {
		run, err = st.CreateRun(ctx, loaded.Digest, loaded.Shape.Count().String())
		if err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
		}
		formatter.VerboseLog("created run %s", run.ID)
	} else {
		run, err = st.GetRun(ctx, runID)
		if err != nil {
			code := ErrCodeStoreFailed
			if errors.Is(err, store.ErrRunNotFound) {
				code = ErrCodeNotFound
			}
			_ = formatter.Error(code, err.Error(), nil)
			return WrapExitError(ExitCommandError, code, err)
		}
		if run.ShapeDigest != loaded.Digest {
			msg := fmt.Sprintf("run %s was created for shape %s, not %s", run.ID, run.ShapeDigest, loaded.Digest)
			_ = formatter.Error(ErrCodeRunMismatch, msg, nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeRunMismatch, msg))
		}
		formatter.VerboseLog("resuming run %s at seq %d", run.ID, run.Emitted)
	}

	en := loaded.Shape.Enumerator()

	// Skip the persisted prefix. Forward pulls only: the sequence has no
	// random access, but it is cheap to replay because nothing is stored
	// or emitted while skipping.
	for skipped := int64(0); skipped < run.Emitted; skipped++ {
		if _, ok := en.Next(); !ok {
			// Emitted values beyond the sequence end mean the store and
			// the shape file disagree; the digest check should have
			// caught this.
			msg := fmt.Sprintf("run %s has %d values but the shape exhausted after %d", run.ID, run.Emitted, skipped)
			_ = formatter.Error(ErrCodeRunMismatch, msg, nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeRunMismatch, msg))
		}
	}

	var (
		emitted  uint64
		complete bool
		batch    [][]byte
	)
	flush := func() error {
		if err := st.AppendValues(ctx, run.ID, batch); err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeStoreFailed, err)
		}
		batch = batch[:0]
		return nil
	}

	for {
		if limit > 0 && emitted == limit {
			break
		}
		v, ok := en.Next()
		if !ok {
			complete = true
			break
		}
		encoded, err := encodeValue(v)
		if err != nil {
			return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
		}
		batch = append(batch, encoded)
		emitted++

		if len(batch) == dumpBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	result := DumpResult{
		RunID:         run.ID,
		ShapeDigest:   run.ShapeDigest,
		DeclaredCount: run.DeclaredCount,
		Emitted:       emitted,
		Total:         uint64(run.Emitted) + emitted,
		Complete:      complete,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "run %s\n", result.RunID)
	fmt.Fprintf(formatter.Writer, "persisted %d value(s), %d total", result.Emitted, result.Total)
	if result.Complete {
		fmt.Fprintf(formatter.Writer, " (complete)")
	}
	fmt.Fprintln(formatter.Writer)
	return nil
}
