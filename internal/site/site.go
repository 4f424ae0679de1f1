// Package site handles the file I/O side of anchoring a static site: finding
// HTML files, parsing them into documents, and writing mutated documents back.
package site

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// FindHTMLFiles returns every .html/.htm file under root, sorted. A root that
// is itself a file is returned as-is when it has an HTML extension. Dotted
// directories (.git, .cache) are skipped.
func FindHTMLFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !isHTMLFile(root) {
			return nil, fmt.Errorf("%s is not an HTML file", root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isHTMLFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// ParseDocument parses a full HTML document from r.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// LoadFile reads and parses one HTML file.
func LoadFile(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// RenderDocument serializes doc back to HTML with a trailing newline.
func RenderDocument(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if buf.Len() == 0 || buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// SaveFile writes the rendered document to path atomically: the content goes
// to a temp file first and replaces the target with a rename.
func SaveFile(path string, doc *html.Node) error {
	content, err := RenderDocument(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return writeFileAtomic(path, content)
}

func writeFileAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file %s to %s: %w", tmp, path, err)
	}
	return nil
}

// RouteForFile derives the site-relative request path for a file inside root,
// the path a browser would show for the page. Index files collapse to their
// directory. Used as the manager location so href fallback under <base>
// points back at the page itself.
func RouteForFile(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	route := "/" + filepath.ToSlash(rel)
	if base := filepath.Base(rel); strings.EqualFold(base, "index.html") || strings.EqualFold(base, "index.htm") {
		route = strings.TrimSuffix(route, filepath.Base(rel))
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
	}
	return route
}
