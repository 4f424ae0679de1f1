package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/benedict2310/anchorctl/internal/config"
	"github.com/benedict2310/anchorctl/internal/journal"
	"github.com/benedict2310/anchorctl/internal/output"
	"github.com/benedict2310/anchorctl/internal/site"
	"github.com/benedict2310/anchorctl/pkg/anchor"
)

type fileResult struct {
	Path    string `json:"path" yaml:"path"`
	Anchors int    `json:"anchors" yaml:"anchors"`
	Changed bool   `json:"changed" yaml:"changed"`
}

type runResponse struct {
	Command  string       `json:"command" yaml:"command"`
	Selector string       `json:"selector" yaml:"selector"`
	DryRun   bool         `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	RunID    string       `json:"runId,omitempty" yaml:"runId,omitempty"`
	Files    []fileResult `json:"files" yaml:"files"`
}

func newAddCmd() *cobra.Command {
	var flags anchorFlags
	var outputMode string
	var dryRun bool
	var journalPath string
	var noJournal bool

	cmd := &cobra.Command{
		Use:   "add <file-or-dir>",
		Short: "Attach permalink anchors to headings in HTML files",
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
			opts, err := flags.resolveOptions(cmd, cfg)
			if err != nil {
				return usageError(err)
			}
			target := flags.target(cfg)

			files, err := site.FindHTMLFiles(args[0])
			if err != nil {
				return err
			}

			resp := runResponse{
				Command:  "add",
				Selector: flags.resolveSelector(cfg),
				DryRun:   dryRun,
			}
			for _, path := range files {
				doc, err := site.LoadFile(path)
				if err != nil {
					return err
				}

				m, err := anchor.NewManager(doc, opts)
				if err != nil {
					return err
				}
				m.SetLocation(site.RouteForFile(args[0], path))
				if flags.touch {
					m.SetTouchDetector(func(*html.Node) bool { return true })
				}

				if err := m.Add(target); err != nil {
					return fmt.Errorf("anchor %s: %w", path, err)
				}

				added := len(m.Tracked())
				if added > 0 && !dryRun {
					if err := site.SaveFile(path, doc); err != nil {
						return err
					}
				}
				resp.Files = append(resp.Files, fileResult{Path: path, Anchors: added, Changed: added > 0})
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

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", output.FlagUsage)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without writing files or the journal")
	cmd.Flags().StringVar(&journalPath, "journal", "", "Journal database path")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Skip journaling this run")

	return cmd
}

// recordRun stores the run outcome in the journal and returns the run id.
func recordRun(cmd *cobra.Command, cfg config.Config, explicitPath string, resp runResponse) (string, error) {
	path := explicitPath
	if path == "" {
		path = cfg.Journal
	}
	if path == "" {
		path = journal.DefaultPath
	}

	ctx := cmd.Context()
	j, err := journal.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer j.Close()

	runID, err := journal.NewRunID(time.Now())
	if err != nil {
		return "", err
	}

	run := journal.Run{
		ID:        runID,
		Command:   resp.Command,
		Selector:  resp.Selector,
		StartedAt: time.Now(),
	}
	for _, f := range resp.Files {
		rf := journal.RunFile{Path: f.Path}
		if resp.Command == "remove" {
			rf.AnchorsRemoved = f.Anchors
		} else {
			rf.AnchorsAdded = f.Anchors
		}
		run.Files = append(run.Files, rf)
	}
	if err := j.Record(ctx, run); err != nil {
		return "", err
	}
	return runID, nil
}

func writeRunResponse(cmd *cobra.Command, format output.Format, resp runResponse) error {
	if format != output.FormatTable {
		return output.WriteStructured(cmd.OutOrStdout(), format, resp)
	}

	rows := make([][]string, 0, len(resp.Files))
	total := 0
	for _, f := range resp.Files {
		rows = append(rows, []string{f.Path, strconv.Itoa(f.Anchors), strconv.FormatBool(f.Changed)})
		total += f.Anchors
	}
	if err := output.WriteTable(cmd.OutOrStdout(), []string{"FILE", "ANCHORS", "CHANGED"}, rows); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d anchor(s) across %d file(s)", total, len(resp.Files))
	if resp.DryRun {
		summary += " (dry run: nothing written)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
