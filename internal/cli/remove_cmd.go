package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benedict2310/anchorctl/internal/output"
	"github.com/benedict2310/anchorctl/internal/site"
	"github.com/benedict2310/anchorctl/pkg/anchor"
)

func newRemoveCmd() *cobra.Command {
	var flags anchorFlags
	var outputMode string
	var dryRun bool
	var journalPath string
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "remove <file-or-dir>",
		Short: "Strip permalink anchors from HTML files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return usageError(err)
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return usageError(err)
			}
			target := flags.target(cfg)

			files, err := site.FindHTMLFiles(args[0])
			if err != nil {
				return err
			}

			resp := runResponse{
				Command:  "remove",
				Selector: flags.resolveSelector(cfg),
				DryRun:   dryRun,
			}
			for _, path := range files {
				doc, err := site.LoadFile(path)
				if err != nil {
					return err
				}

				m, err := anchor.NewManager(doc, anchor.Options{})
				if err != nil {
					return err
				}

				before := anchor.Count(doc)
				if err := m.Remove(target); err != nil {
					return fmt.Errorf("strip anchors from %s: %w", path, err)
				}
				removed := before - anchor.Count(doc)

				if removed > 0 && !dryRun {
					if err := site.SaveFile(path, doc); err != nil {
						return err
					}
				}
				resp.Files = append(resp.Files, fileResult{Path: path, Anchors: removed, Changed: removed > 0})
			}

			if !dryRun && !noJournal {
				runID, err := recordRun(cmd, cfg, journalPath, resp)
				if err != nil {
					return err
				}
				resp.RunID = runID
			}

			return writeRunResponse(cmd, format, resp)
		},
	}

	cmd.Flags().StringVar(&flags.selector, "selector", "", "CSS selector for target headings (default h2-h6)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", output.FlagUsage)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without writing files or the journal")
	cmd.Flags().StringVar(&journalPath, "journal", "", "Journal database path")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Skip journaling this run")

	return cmd
}
