package anchor

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// DefaultSelector matches the heading levels anchored when no target is given.
// Top-level h1 headings are deliberately excluded: a page title is not a
// section and does not want a permalink.
const DefaultSelector = "h2, h3, h4, h5, h6"

// TargetError reports an unusable scan target. It is returned before any
// document mutation takes place.
type TargetError struct {
	Msg string
	Err error
}

func (e *TargetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

type targetKind int

const (
	targetDefault targetKind = iota
	targetSelector
	targetNodes
)

// Target names the elements an operation applies to. The zero value targets
// the default heading selector. Construct non-default targets with Selector
// or Nodes; no other input shape is representable.
type Target struct {
	kind     targetKind
	selector string
	nodes    []*html.Node
}

// Selector targets every element matched by a CSS selector, in document order.
func Selector(expr string) Target {
	return Target{kind: targetSelector, selector: expr}
}

// Nodes targets an explicit ordered collection of elements.
func Nodes(nodes []*html.Node) Target {
	return Target{kind: targetNodes, nodes: nodes}
}

// Resolve evaluates the target against doc. A selector that fails to compile
// and a node set containing nil entries are contract violations surfaced as
// *TargetError; zero matches is an empty (non-error) result.
func (t Target) Resolve(doc *html.Node) ([]*html.Node, error) {
	switch t.kind {
	case targetNodes:
		for i, n := range t.nodes {
			if n == nil {
				return nil, &TargetError{Msg: fmt.Sprintf("target node at index %d is nil", i)}
			}
		}
		return t.nodes, nil
	case targetSelector, targetDefault:
		expr := t.selector
		if t.kind == targetDefault {
			expr = DefaultSelector
		}
		sel, err := cascadia.Compile(expr)
		if err != nil {
			return nil, &TargetError{Msg: fmt.Sprintf("compile selector %q", expr), Err: err}
		}
		return sel.MatchAll(doc), nil
	default:
		return nil, &TargetError{Msg: fmt.Sprintf("unknown target kind %d", t.kind)}
	}
}
