// Package cli builds the anchorctl command tree.
package cli

import "github.com/spf13/cobra"

// NewRootCmd builds the anchorctl root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchorctl",
		Short: "Attach heading permalinks to static HTML sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to anchorctl.yaml (default ./anchorctl.yaml)")

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSlugCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}
