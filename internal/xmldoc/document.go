package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

var (
	// ErrNoRootElement indicates the text contains no element
	ErrNoRootElement = errors.New("document has no root element")
	// ErrMultipleRoots indicates more than one top-level element
	ErrMultipleRoots = errors.New("document has more than one root element")
)

// Document is a parsed XML tree
type Document struct {
	node *xmlquery.Node
}

// Parse parses XML text into a Document
func Parse(text string) (*Document, error) {
	if roots, ok := countRoots(text); ok {
		switch {
		case roots == 0:
			return nil, ErrNoRootElement
		case roots > 1:
			return nil, ErrMultipleRoots
		}
	}

	node, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	doc := &Document{node: node}
	if doc.Root() == nil {
		return nil, ErrNoRootElement
	}

	return doc, nil
}

// countRoots counts top-level elements. ok is false when the text is not
// well-formed; xmlquery then reports the syntax error itself.
func countRoots(text string) (int, bool) {
	d := xml.NewDecoder(strings.NewReader(text))
	// text is already decoded to UTF-8
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	roots, depth := 0, 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return roots, depth == 0
		}
		if err != nil {
			return 0, false
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

// Serialize renders the document back to XML text
func Serialize(doc *Document) string {
	if doc == nil || doc.node == nil {
		return ""
	}
	return doc.node.OutputXML(true)
}

// Node returns the underlying document node
func (d *Document) Node() *xmlquery.Node {
	return d.node
}

// Root returns the first element child of the document
func (d *Document) Root() *xmlquery.Node {
	for n := d.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// RootName returns the qualified name of the root element
func (d *Document) RootName() string {
	root := d.Root()
	if root == nil {
		return ""
	}
	if root.Prefix != "" {
		return root.Prefix + ":" + root.Data
	}
	return root.Data
}

// Query evaluates an XPath expression against the document
func (d *Document) Query(expr string) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(d.node, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return nodes, nil
}

// Text returns the trimmed inner text of the first node matching expr.
// It returns an empty string when nothing matches.
func (d *Document) Text(expr string) (string, error) {
	node, err := xmlquery.Query(d.node, expr)
	if err != nil {
		return "", fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	if node == nil {
		return "", nil
	}
	return strings.TrimSpace(node.InnerText()), nil
}
