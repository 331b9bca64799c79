package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Valid  bool   `json:"valid"`
	Digest string `json:"digest"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <shape-file>",
		Short: "Check that a shape description compiles",
		Long: `Decode and compile a shape description without enumerating anything.

Exits zero when the description is well formed. Compile errors report the
path of the offending node within the description.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, shapePath string, cmd *cobra.Command) error {
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

	if formatter.Format == "json" {
		return formatter.Success(ValidateResult{Valid: true, Digest: loaded.Digest})
	}

	fmt.Fprintf(formatter.Writer, "✓ shape valid (%s)\n", shapePath)
	return nil
}
