package wxr

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Node is one element of the parsed export tree. WXR dumps carry
// plugin-defined, namespaced elements at arbitrary depths, so the document
// is kept as a generic tree instead of a fixed set of structs.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Attr returns the value of the named attribute, or "" when missing.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Document is a parsed WXR export.
type Document struct {
	Root Node
}

// Open reads and parses a WXR export from disk.
// A file ending in .gz is decompressed transparently.
func Open(path string) (*Document, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("could not read gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Parse decodes a WXR export into a generic element tree.
func Parse(r io.Reader) (*Document, error) {

	var root Node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("could not parse xml: %w", err)
	}

	return &Document{Root: root}, nil
}

// Channel returns the top-level channel element, or nil when absent.
func (d *Document) Channel() *Node {
	for i := range d.Root.Children {
		c := &d.Root.Children[i]
		if c.XMLName.Local == "channel" && c.XMLName.Space == "" {
			return c
		}
	}
	return nil
}

// Items returns every item element under the channel, in document order.
func (d *Document) Items() []*Node {
	ch := d.Channel()
	if ch == nil {
		return nil
	}

	var items []*Node
	collectItems(&items, ch)
	return items
}

func collectItems(items *[]*Node, node *Node) {
	for i := range node.Children {
		c := &node.Children[i]
		if c.XMLName.Local == "item" && c.XMLName.Space == "" {
			*items = append(*items, c)
			continue
		}
		collectItems(items, c)
	}
}
