package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedict2310/anchorctl/internal/journal"
	"github.com/benedict2310/anchorctl/internal/output"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var outputMode string
	var journalPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent anchorctl runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return usageError(err)
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return usageError(err)
			}

			path := journalPath
			if path == "" {
				path = cfg.Journal
			}
			if path == "" {
				path = journal.DefaultPath
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			j, err := journal.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				anchors := 0
				for _, f := range run.Files {
					anchors += f.AnchorsAdded + f.AnchorsRemoved
				}
				rows = append(rows, []string{
					run.ID,
					run.Command,
					run.Selector,
					run.StartedAt.UTC().Format(time.RFC3339),
					strconv.Itoa(len(run.Files)),
					strconv.Itoa(anchors),
				})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"RUN", "COMMAND", "SELECTOR", "STARTED", "FILES", "ANCHORS"}, rows)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", output.FlagUsage)
	cmd.Flags().StringVar(&journalPath, "journal", "", "Journal database path")

	return cmd
}
