package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedict2310/anchorctl/internal/output"
	"github.com/benedict2310/anchorctl/internal/site"
	"github.com/benedict2310/anchorctl/pkg/anchor"
)

type headingEntry struct {
	File     string `json:"file" yaml:"file"`
	Level    string `json:"level" yaml:"level"`
	Text     string `json:"text" yaml:"text"`
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Anchored bool   `json:"anchored" yaml:"anchored"`
}

func newListCmd() *cobra.Command {
	var selector string
	var outputMode string

	cmd := &cobra.Command{
		Use:   "list <file-or-dir>",
		Short: "List headings and their anchor state without mutating anything",
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

			expr := selector
			if expr == "" {
				expr = cfg.Selector
			}
			if expr == "" {
				expr = anchor.DefaultSelector
			}
			target := anchor.Selector(expr)

			files, err := site.FindHTMLFiles(args[0])
			if err != nil {
				return err
			}

			var entries []headingEntry
			for _, path := range files {
				doc, err := site.LoadFile(path)
				if err != nil {
					return err
				}
				els, err := target.Resolve(doc)
				if err != nil {
					return fmt.Errorf("list headings in %s: %w", path, err)
				}
				for _, el := range els {
					entries = append(entries, headingEntry{
						File:     path,
						Level:    el.Data,
						Text:     strings.TrimSpace(anchor.Text(el)),
						ID:       anchor.ID(el),
						Anchored: anchor.Anchored(el),
					})
				}
			}

			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				id := e.ID
				if id == "" {
					id = "<none>"
				}
				rows = append(rows, []string{e.File, e.Level, e.Text, id, strconv.FormatBool(e.Anchored)})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"FILE", "LEVEL", "TEXT", "ID", "ANCHORED"}, rows)
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "CSS selector for target headings (default h2-h6)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", output.FlagUsage)

	return cmd
}
