package main

import (
	"fmt"

	"github.com/aretw0/fsmgraph/internal/validator"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <source>",
	Short: "Check the graph for consistency",
	Long: `Reports unknown kinds, duplicate ids, bad fields, dangling edges, entry problems,
unreachable nodes and malformed gates. Exits non-zero when any error is found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := loadDescription(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		diags := validator.Validate(desc, registry.Default(), cli.entry)
		for _, d := range diags {
			fmt.Fprintln(cmd.ErrOrStderr(), d.String())
		}
		if err := validator.Err(diags); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
