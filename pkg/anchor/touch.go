package anchor

import (
	"golang.org/x/net/html"
)

// TouchDetector reports whether the document targets a touch-capable
// environment.
type TouchDetector func(doc *html.Node) bool

// DetectTouch is the default touch probe. Tooling that processes documents
// ahead of delivery cannot feel the client pointer, so capability is read
// from hints the document itself declares: a "touch" class on the root
// element (the Modernizr convention) or an ontouchstart attribute on it.
// Documents without either hint are treated as not touch-capable.
func DetectTouch(doc *html.Node) bool {
	root := rootElement(doc)
	if root == nil {
		return false
	}
	if hasClass(root, "touch") {
		return true
	}
	_, ok := getAttribute(root, "ontouchstart")
	return ok
}

func rootElement(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		return doc
	}
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if found := rootElement(child); found != nil {
			return found
		}
	}
	return nil
}
