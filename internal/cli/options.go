package cli

import (
	"github.com/spf13/cobra"

	"github.com/benedict2310/anchorctl/internal/config"
	"github.com/benedict2310/anchorctl/pkg/anchor"
)

// anchorFlags holds the per-command option overrides. Flag values only win
// over config file values when the flag was actually set.
type anchorFlags struct {
	selector   string
	icon       string
	visibility string
	placement  string
	ariaLabel  string
	class      string
	baseHref   string
	truncate   int
	title      string
	touch      bool
}

func (f *anchorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.selector, "selector", "", "CSS selector for target headings (default h2-h6)")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Glyph rendered inside each anchor")
	cmd.Flags().StringVar(&f.visibility, "visibility", "", "Anchor visibility: hover, always, or touch")
	cmd.Flags().StringVar(&f.placement, "placement", "", "Anchor placement: left or right")
	cmd.Flags().StringVar(&f.ariaLabel, "aria-label", "", "Accessible name for each anchor")
	cmd.Flags().StringVar(&f.class, "class", "", "Extra class appended to each anchor")
	cmd.Flags().StringVar(&f.baseHref, "base-href", "", "URI prefix prepended to every fragment href")
	cmd.Flags().IntVar(&f.truncate, "truncate", 0, "Maximum generated identifier length")
	cmd.Flags().StringVar(&f.title, "title", "", "Tooltip text for each anchor")
	cmd.Flags().BoolVar(&f.touch, "touch", false, "Treat documents as touch-capable")
}

// loadConfig reads the config file named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, _, err := config.Load(path)
	return cfg, err
}

// resolveOptions layers flag overrides on top of config file defaults. The
// anchor package fills anything still unset.
func (f *anchorFlags) resolveOptions(cmd *cobra.Command, cfg config.Config) (anchor.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return anchor.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("icon") {
		opts.Icon = f.icon
	}
	if flags.Changed("visibility") {
		opts.Visibility, err = anchor.ParseVisibility(f.visibility)
		if err != nil {
			return anchor.Options{}, err
		}
	}
	if flags.Changed("placement") {
		opts.Placement, err = anchor.ParsePlacement(f.placement)
		if err != nil {
			return anchor.Options{}, err
		}
	}
	if flags.Changed("aria-label") {
		opts.AriaLabel = f.ariaLabel
	}
	if flags.Changed("class") {
		opts.Class = f.class
	}
	if flags.Changed("base-href") {
		opts.BaseHref = f.baseHref
	}
	if flags.Changed("truncate") {
		opts.TruncateLength = f.truncate
	}
	if flags.Changed("title") {
		opts.Title = f.title
	}
	return opts, nil
}

// resolveSelector picks the selector: flag, then config, then the built-in
// heading default.
func (f *anchorFlags) resolveSelector(cfg config.Config) string {
	if f.selector != "" {
		return f.selector
	}
	if cfg.Selector != "" {
		return cfg.Selector
	}
	return anchor.DefaultSelector
}

// target wraps the resolved selector for the anchor package boundary.
func (f *anchorFlags) target(cfg config.Config) anchor.Target {
	return anchor.Selector(f.resolveSelector(cfg))
}
