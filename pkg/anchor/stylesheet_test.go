package anchor

import (
	"strings"
	"testing"
)

func TestEnsureStylesheetInjectsOnce(t *testing.T) {
	doc := parseDoc(t, "<h2>One</h2><h3>Two</h3>")
	m := newTestManager(t, doc, Options{})

	if err := m.Add(Selector("h2")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := m.Add(Selector("h3")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	styles := selectAll(t, doc, "style["+styleMarkerAttr+"]")
	if len(styles) != 1 {
		t.Fatalf("injected style count = %d, want 1", len(styles))
	}
	css := textContent(styles[0])
	for _, want := range []string{"." + AnchorClass, "opacity:0", ":hover", "[data-anchor-icon]::after"} {
		if !strings.Contains(css, want) {
			t.Fatalf("stylesheet missing %q:\n%s", want, css)
		}
	}
}

func TestEnsureStylesheetRespectsExistingMarker(t *testing.T) {
	doc := parseFullDoc(t, `<!DOCTYPE html><html><head><style `+styleMarkerAttr+`>.custom{}</style></head><body><h2>One</h2></body></html>`)

	if _, err := Apply(doc, Options{}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	styles := selectAll(t, doc, "style["+styleMarkerAttr+"]")
	if len(styles) != 1 {
		t.Fatalf("style count = %d, want the pre-existing block only", len(styles))
	}
	if got := textContent(styles[0]); got != ".custom{}" {
		t.Fatalf("pre-existing style block was replaced: %q", got)
	}
}
