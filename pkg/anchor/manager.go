// Package anchor attaches clickable permalink anchors to the headings of a
// parsed HTML document. Identifiers are derived from heading text and made
// unique against every id already present in the document; the mutation is
// idempotent, so repeated scans never double-anchor a heading or rename an
// assigned identifier.
package anchor

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/benedict2310/anchorctl/pkg/slug"
)

// AnchorClass is the marker class carried by every anchor this package
// builds. It is how scans recognize their own work on later passes.
const AnchorClass = "heading-anchor"

// idOverrideAttr lets a document pin a heading's identifier without setting
// an id attribute up front.
const idOverrideAttr = "data-anchor-id"

const iconDataAttr = "data-anchor-icon"

// iconFontFamily is applied inline when the configured icon is the built-in
// glyph, pinning it to an emoji face so the link symbol renders consistently.
const iconFontFamily = `"Apple Color Emoji","Segoe UI Emoji","Noto Color Emoji",sans-serif`

// Manager anchors headings of a single document. It remembers which elements
// it has anchored so removal can operate on everything a scan produced.
// Managers are not safe for concurrent use; all mutation happens on the
// caller's goroutine.
type Manager struct {
	doc      *html.Node
	opts     Options
	location string
	detect   TouchDetector

	tracked map[*html.Node]struct{}
	order   []*html.Node
}

// NewManager binds a manager to a parsed document. Unset option fields
// receive their defaults here, once.
func NewManager(doc *html.Node, opts Options) (*Manager, error) {
	if doc == nil {
		return nil, &TargetError{Msg: "document is nil"}
	}
	return &Manager{
		doc:     doc,
		opts:    opts.withDefaults(),
		detect:  DetectTouch,
		tracked: make(map[*html.Node]struct{}),
	}, nil
}

// Apply is the one-shot entry point: it builds a manager over doc and anchors
// the default heading selection in a single scan.
func Apply(doc *html.Node, opts Options) (*Manager, error) {
	m, err := NewManager(doc, opts)
	if err != nil {
		return nil, err
	}
	if err := m.Add(Target{}); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateOptions replaces the manager's configuration for subsequent scans.
// Anchors already in the document are not restyled.
func (m *Manager) UpdateOptions(opts Options) {
	m.opts = opts.withDefaults()
}

// Options returns the resolved configuration.
func (m *Manager) Options() Options {
	return m.opts
}

// SetLocation records the document's own path and query, used as the href
// prefix when the document carries a <base> element and no BaseHref is
// configured.
func (m *Manager) SetLocation(path string) {
	m.location = path
}

// SetTouchDetector overrides the touch capability probe. A nil detector
// restores the default.
func (m *Manager) SetTouchDetector(d TouchDetector) {
	if d == nil {
		d = DetectTouch
	}
	m.detect = d
}

// Add anchors every element the target resolves to. Elements that already
// carry an anchor are left wholly untouched. Identifier precedence per
// element: an existing id attribute, then a data-anchor-id override, then a
// slug generated from the element's text; only generated identifiers go
// through collision suffixing against the ids present in the document at
// scan start. Resolving zero elements is a no-op: nothing is mutated and no
// stylesheet is injected.
func (m *Manager) Add(target Target) error {
	els, err := target.Resolve(m.doc)
	if err != nil {
		return err
	}
	if len(els) == 0 {
		return nil
	}

	ensureStylesheet(m.doc)

	registry := collectIDs(m.doc)
	touch := m.opts.Visibility == VisibilityTouch && m.detect(m.doc)
	base := m.hrefBase()

	for _, el := range els {
		if m.HasAnchor(el) {
			continue
		}

		id, generated := elementID(el, m.opts.TruncateLength)
		if generated {
			id = resolveCollision(id, registry)
			registry[id] = struct{}{}
			setAttribute(el, "id", id)
		}

		a := m.buildAnchor(base+"#"+id, touch)
		if m.opts.Placement == PlacementLeft {
			el.InsertBefore(a, el.FirstChild)
		} else {
			el.AppendChild(a)
		}
		m.track(el)
	}

	return nil
}

// Remove detaches the anchors of every element the target resolves to and
// drops those elements from tracking. Elements without an anchor are
// silently skipped; removal also works on elements this manager never
// anchored itself.
func (m *Manager) Remove(target Target) error {
	els, err := target.Resolve(m.doc)
	if err != nil {
		return err
	}
	for _, el := range els {
		a := findByClass(el, AnchorClass)
		if a == nil {
			continue
		}
		m.untrack(el)
		if a.Parent != nil {
			a.Parent.RemoveChild(a)
		}
	}
	return nil
}

// RemoveAll removes the anchors of every element this manager has anchored.
func (m *Manager) RemoveAll() error {
	return m.Remove(Nodes(m.Tracked()))
}

// HasAnchor reports whether el already carries an anchor. See Anchored.
func (m *Manager) HasAnchor(el *html.Node) bool {
	return Anchored(el)
}

// Tracked returns the anchored elements in the order they were first
// processed.
func (m *Manager) Tracked() []*html.Node {
	out := make([]*html.Node, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Manager) track(el *html.Node) {
	if _, ok := m.tracked[el]; ok {
		return
	}
	m.tracked[el] = struct{}{}
	m.order = append(m.order, el)
}

func (m *Manager) untrack(el *html.Node) {
	if _, ok := m.tracked[el]; !ok {
		return
	}
	delete(m.tracked, el)
	for i, n := range m.order {
		if n == el {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// hrefBase picks the prefix in front of the fragment: an explicit BaseHref
// wins; a document with a <base> element needs the page's own location so
// fragment links don't resolve against the base target; everything else gets
// a bare fragment.
func (m *Manager) hrefBase() string {
	if m.opts.BaseHref != "" {
		return m.opts.BaseHref
	}
	if findElement(m.doc, atom.Base) != nil {
		return m.location
	}
	return ""
}

// elementID picks the identifier for el. Existing id attributes and
// data-anchor-id overrides are reused verbatim and reported as not generated,
// which exempts them from collision suffixing.
func elementID(el *html.Node, truncate int) (id string, generated bool) {
	if v, ok := getAttribute(el, "id"); ok {
		return v, false
	}
	if v, ok := getAttribute(el, idOverrideAttr); ok {
		return v, false
	}
	return slug.Generate(textContent(el), truncate), true
}

// resolveCollision suffixes candidate with -0, -1, ... until it is free in
// the registry. An empty candidate participates like any other: a second
// empty slug in one document comes out as "-0".
func resolveCollision(candidate string, registry map[string]struct{}) string {
	if _, taken := registry[candidate]; !taken {
		return candidate
	}
	for i := 0; ; i++ {
		next := candidate + "-" + strconv.Itoa(i)
		if _, taken := registry[next]; !taken {
			return next
		}
	}
}

func (m *Manager) buildAnchor(href string, touch bool) *html.Node {
	class := AnchorClass
	if m.opts.Class != "" {
		class += " " + m.opts.Class
	}

	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
	}
	setAttribute(a, "class", class)
	setAttribute(a, "aria-label", m.opts.AriaLabel)
	setAttribute(a, iconDataAttr, m.opts.Icon)
	if m.opts.Title != "" {
		setAttribute(a, "title", m.opts.Title)
	}
	setAttribute(a, "href", href)

	var styles []string
	if m.opts.Visibility == VisibilityAlways || touch {
		styles = append(styles, "opacity: 1")
	}
	if m.opts.Icon == DefaultIcon {
		styles = append(styles, "font-family: "+iconFontFamily)
		if m.opts.Placement == PlacementLeft {
			// The icon face's metrics must not stretch the heading line box.
			styles = append(styles, "line-height: inherit")
		}
	}
	if m.opts.Placement == PlacementLeft {
		styles = append(styles, "position: absolute", "margin-left: -1em", "padding-right: 0.5em")
	} else {
		styles = append(styles, "padding-left: 0.375em")
	}
	if len(styles) > 0 {
		setAttribute(a, "style", strings.Join(styles, "; "))
	}

	return a
}
