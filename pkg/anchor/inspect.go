package anchor

import "golang.org/x/net/html"

// Anchored reports whether el already carries an anchor: its first or last
// child element bears the marker class. This is the same boundary check the
// scan uses; an anchor shuffled into the middle of the element by outside
// edits goes undetected.
func Anchored(el *html.Node) bool {
	if el == nil {
		return false
	}
	return hasClass(firstElementChild(el), AnchorClass) || hasClass(lastElementChild(el), AnchorClass)
}

// Count returns the number of anchor elements under root.
func Count(root *html.Node) int {
	if root == nil {
		return 0
	}
	n := 0
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, AnchorClass) {
			n++
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return n
}

// Text returns the concatenated text content of el, the string slugs are
// generated from.
func Text(el *html.Node) string {
	return textContent(el)
}

// ID returns el's id attribute, or the empty string when none is set.
func ID(el *html.Node) string {
	if el == nil {
		return ""
	}
	v, _ := getAttribute(el, "id")
	return v
}
