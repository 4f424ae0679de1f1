package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedict2310/anchorctl/pkg/slug"
)

func newSlugCmd() *cobra.Command {
	var truncate int

	cmd := &cobra.Command{
		Use:   "slug <text>...",
		Short: "Print the identifier derived from heading text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), slug.Generate(strings.Join(args, " "), truncate))
			return nil
		},
	}

	cmd.Flags().IntVar(&truncate, "truncate", slug.DefaultMaxLength, "Maximum identifier length")

	return cmd
}
