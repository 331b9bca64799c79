package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"exhaust/internal/card"
)

// CountResult is the JSON payload of the count command.
type CountResult struct {
	// Count is the decimal cardinality, or "unknown".
	Count string `json:"count"`
	Exact bool   `json:"exact"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <shape-file>",
		Short: "Print the number of distinct values of a shape",
		Long: `Compute the cardinality of a shape description without enumerating it.

Counting is independent of iteration: the result is folded bottom-up from
the leaf domains with overflow-checked arithmetic. A cardinality beyond
uint64 range prints as "unknown"; enumeration of such a shape still works.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCount(opts *RootOptions, shapePath string, cmd *cobra.Command) error {
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

	c := loaded.Shape.Count()
	formatter.VerboseLog("shape %s", loaded.Digest)

	if formatter.Format == "json" {
		return formatter.Success(CountResult{Count: c.String(), Exact: c.Known()})
	}

	fmt.Fprintln(formatter.Writer, formatCount(c))
	return nil
}

// formatCount renders a count for humans: grouped digits, or "unknown".
func formatCount(c card.Count) string {
	n, ok := c.Value()
	if !ok {
		return "unknown"
	}
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
