package wxr

import (
	"encoding/xml"
	"strings"
)

// nsKeywords pairs a namespace URI fragment with the short alias it claims.
// The keywords are evaluated in order, so a URI like
// http://wordpress.org/export/1.2/excerpt/ registers as excerpt, not wp.
var nsKeywords = []struct{ keyword, alias string }{
	{"excerpt", "excerpt"},
	{"content", "content"},
	{"wellformedweb", "wfw"},
	{"dc", "dc"},
	{"wordpress", "wp"},
}

// Namespaces maps the short aliases (wp, content, excerpt, dc, wfw) to the
// namespace URIs discovered in the dump. It is built once, before any
// alias-qualified lookup, and never mutated afterwards.
type Namespaces map[string]string

// ResolveNamespaces inspects every descendant element of every item and
// registers the first URI matching each keyword under its fixed alias.
// Elements without a namespace are skipped; an empty dump yields an empty
// map and alias-qualified lookups simply resolve to nothing.
func ResolveNamespaces(doc *Document) Namespaces {
	ns := make(Namespaces)
	for _, item := range doc.Items() {
		for i := range item.Children {
			registerNamespaces(ns, &item.Children[i])
		}
	}
	return ns
}

func registerNamespaces(ns Namespaces, node *Node) {

	if uri := node.XMLName.Space; uri != "" {
		for _, kw := range nsKeywords {
			if !strings.Contains(uri, kw.keyword) {
				continue
			}
			if _, seen := ns[kw.alias]; !seen {
				ns[kw.alias] = uri
			}
			break
		}
	}

	for i := range node.Children {
		registerNamespaces(ns, &node.Children[i])
	}
}

// CleanTag renders a qualified tag name as alias:local when the namespace
// URI is known, {uri}local when it is not, and the bare local name when the
// element carries no namespace.
func (ns Namespaces) CleanTag(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	for alias, uri := range ns {
		if uri == name.Space {
			return alias + ":" + name.Local
		}
	}
	return "{" + name.Space + "}" + name.Local
}
