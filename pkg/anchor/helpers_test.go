package anchor

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body>" + body + "</body></html>"))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

func parseFullDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

func selectAll(t *testing.T, doc *html.Node, expr string) []*html.Node {
	t.Helper()
	sel, err := cascadia.Compile(expr)
	if err != nil {
		t.Fatalf("compile selector %q: %v", expr, err)
	}
	return sel.MatchAll(doc)
}

func selectOne(t *testing.T, doc *html.Node, expr string) *html.Node {
	t.Helper()
	nodes := selectAll(t, doc, expr)
	if len(nodes) != 1 {
		t.Fatalf("selector %q matched %d nodes, want exactly 1", expr, len(nodes))
	}
	return nodes[0]
}

func attr(t *testing.T, n *html.Node, key string) string {
	t.Helper()
	v, ok := getAttribute(n, key)
	if !ok {
		t.Fatalf("element <%s> has no %q attribute", n.Data, key)
	}
	return v
}

func newTestManager(t *testing.T, doc *html.Node, opts Options) *Manager {
	t.Helper()
	m, err := NewManager(doc, opts)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}
