package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:   "list <shape-file>",
		Short: "Enumerate a shape's values to stdout",
		Long: `Enumerate the distinct values of a shape in its canonical order.

Values stream lazily, one per line, each rendered as deterministic JSON;
in json format every line also carries the value's sequence number.
Enumeration is strictly forward, so --limit bounds the work done as well
as the output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], limit, cmd)
		},
	}

	cmd.Flags().Uint64Var(&limit, "limit", 0, "stop after this many values (0 = no limit)")

	return cmd
}

// listLine is one value in json format output.
type listLine struct {
	Seq   uint64 `json:"seq"`
	Value any    `json:"value"`
}

func runList(opts *RootOptions, shapePath string, limit uint64, cmd *cobra.Command) error {
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

	formatter.VerboseLog("shape %s, declared count %s", loaded.Digest, loaded.Shape.Count())

	var seq uint64
	en := loaded.Shape.Enumerator()
	for {
		if limit > 0 && seq == limit {
			break
		}
		v, ok := en.Next()
		if !ok {
			break
		}

		var line []byte
		var encErr error
		if formatter.Format == "json" {
			line, encErr = encodeValue(listLine{Seq: seq, Value: jsonable(v)})
		} else {
			line, encErr = encodeValue(v)
		}
		if encErr != nil {
			return WrapExitError(ExitCommandError, ErrCodeGeneric, encErr)
		}
		fmt.Fprintf(formatter.Writer, "%s\n", line)
		seq++
	}

	formatter.VerboseLog("emitted %d value(s)", seq)
	return nil
}
