package anchor

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// styleMarkerAttr tags the injected style element so repeated scans can
// recognize an already-styled document.
const styleMarkerAttr = "data-heading-anchors"

// baseStyles keeps anchors hidden until their heading is hovered or the
// anchor itself has focus, and renders the configured glyph through the icon
// data attribute.
const baseStyles = `.` + AnchorClass + `{opacity:0;text-decoration:none;-webkit-font-smoothing:antialiased;-moz-osx-font-smoothing:grayscale}` +
	`:hover>.` + AnchorClass + `,.` + AnchorClass + `:focus{opacity:1}` +
	`[data-anchor-icon]::after{content:attr(data-anchor-icon)}`

// ensureStylesheet injects the shared style block into the document head,
// once per document. The presence check on the marker attribute makes the
// operation idempotent; documents without a head are left unstyled.
func ensureStylesheet(doc *html.Node) {
	if hasStylesheet(doc) {
		return
	}
	head := findElement(doc, atom.Head)
	if head == nil {
		return
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: styleMarkerAttr, Val: ""}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: baseStyles})
	head.AppendChild(style)
}

func hasStylesheet(doc *html.Node) bool {
	if doc == nil {
		return false
	}
	if doc.Type == html.ElementNode && doc.DataAtom == atom.Style {
		if _, ok := getAttribute(doc, styleMarkerAttr); ok {
			return true
		}
	}
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if hasStylesheet(child) {
			return true
		}
	}
	return false
}
