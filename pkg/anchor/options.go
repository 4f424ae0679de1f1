package anchor

import (
	"fmt"
	"strings"

	"github.com/benedict2310/anchorctl/pkg/slug"
)

// DefaultIcon is the glyph rendered inside anchors when no icon is configured.
const DefaultIcon = "\U0001F517"

// DefaultAriaLabel is the accessible name applied when none is configured.
const DefaultAriaLabel = "Anchor"

// Visibility controls when an anchor becomes visible next to its heading.
type Visibility string

const (
	// VisibilityHover shows the anchor only while the heading is hovered or
	// the anchor is focused. This is the default and relies entirely on the
	// shared stylesheet.
	VisibilityHover Visibility = "hover"
	// VisibilityAlways keeps the anchor permanently visible.
	VisibilityAlways Visibility = "always"
	// VisibilityTouch keeps the anchor visible on touch-capable documents,
	// where hovering is not available.
	VisibilityTouch Visibility = "touch"
)

// ParseVisibility parses a visibility name. The empty string maps to hover.
func ParseVisibility(v string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", string(VisibilityHover):
		return VisibilityHover, nil
	case string(VisibilityAlways):
		return VisibilityAlways, nil
	case string(VisibilityTouch):
		return VisibilityTouch, nil
	default:
		return "", fmt.Errorf("invalid visibility %q (expected hover, always, or touch)", v)
	}
}

// Placement controls where the anchor is inserted relative to heading content.
type Placement string

const (
	// PlacementRight appends the anchor after the heading content. Default.
	PlacementRight Placement = "right"
	// PlacementLeft inserts the anchor before the heading content, hanging
	// into the left margin.
	PlacementLeft Placement = "left"
)

// ParsePlacement parses a placement name. The empty string maps to right.
func ParsePlacement(v string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", string(PlacementRight):
		return PlacementRight, nil
	case string(PlacementLeft):
		return PlacementLeft, nil
	default:
		return "", fmt.Errorf("invalid placement %q (expected left or right)", v)
	}
}

// Options configures anchor construction. The zero value is usable: every
// unset field receives its default when a Manager is created or updated.
type Options struct {
	// Icon is the glyph rendered inside the anchor via its icon data
	// attribute.
	Icon string
	// Visibility selects the hover/always/touch display behavior.
	Visibility Visibility
	// Placement puts the anchor before or after the heading content.
	Placement Placement
	// AriaLabel is the anchor's accessible name.
	AriaLabel string
	// Class is an extra class appended after the anchor marker class.
	Class string
	// BaseHref, when non-empty, is prepended to the fragment in every href.
	BaseHref string
	// TruncateLength caps generated identifier length in runes.
	TruncateLength int
	// Title, when non-empty, becomes the anchor's tooltip.
	Title string
}

// withDefaults fills unset fields. Caller-set fields are never overridden.
func (o Options) withDefaults() Options {
	if o.Icon == "" {
		o.Icon = DefaultIcon
	}
	if o.Visibility == "" {
		o.Visibility = VisibilityHover
	}
	if o.Placement == "" {
		o.Placement = PlacementRight
	}
	if o.AriaLabel == "" {
		o.AriaLabel = DefaultAriaLabel
	}
	if o.TruncateLength <= 0 {
		o.TruncateLength = slug.DefaultMaxLength
	}
	return o
}
