// Package taxonomy collects the channel-level term declarations of a WXR
// dump (categories, tags and custom terms) and renders them as an indented
// outline with parent references resolved to display names.
package taxonomy

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"

	"wxr2txt/internal/wxr"
)

// Term is one taxonomy term declaration.
type Term struct {
	Taxonomy string // category, tag, or a custom taxonomy name
	Slug     string // URL-decoded, unique within its taxonomy
	Name     string // display name
	Parent   string // slug reference within the same taxonomy; tags never have one
	Desc     string
}

// Set registers terms in first-seen order, deduplicated by (taxonomy, slug).
type Set struct {
	order []string           // taxonomy names, first-encountered order
	terms map[string][]Term  // taxonomy -> terms, insertion order
	names map[string]map[string]string // taxonomy -> slug -> display name
}

// NewSet creates an empty term registry.
func NewSet() *Set {
	return &Set{
		terms: make(map[string][]Term),
		names: make(map[string]map[string]string),
	}
}

// Add registers a term. The post_tag taxonomy is normalized to tag, the
// slug is URL-decoded, and a declaration re-using an already registered
// slug is discarded without touching the earlier entry. A term declared
// with a name but no slug gets one derived from the name, so dedup and
// parent references still have a key to work with.
func (s *Set) Add(t Term) {

	if t.Taxonomy == "post_tag" {
		t.Taxonomy = "tag"
	}

	t.Slug = decode(t.Slug)
	if t.Slug == "" && t.Name != "" {
		t.Slug = slug.Make(t.Name)
	}

	if _, seen := s.names[t.Taxonomy]; !seen {
		s.order = append(s.order, t.Taxonomy)
		s.names[t.Taxonomy] = make(map[string]string)
	}

	if _, dup := s.names[t.Taxonomy][t.Slug]; dup {
		return
	}

	s.terms[t.Taxonomy] = append(s.terms[t.Taxonomy], t)
	s.names[t.Taxonomy][t.Slug] = t.Name
}

// Build collects the three channel-level declaration blocks in their fixed
// order: wp:category, wp:tag, then wp:term. Order matters only for the
// first-seen-wins dedup when the blocks re-declare the same slug. Terms of
// the nav_menu taxonomy describe menu structure, not content, and are
// skipped.
func Build(doc *wxr.Document, ns wxr.Namespaces) *Set {

	set := NewSet()
	channel := doc.Channel()
	if channel == nil {
		return set
	}

	for _, node := range ns.FindAll(channel, "wp:category") {
		set.Add(Term{
			Taxonomy: "category",
			Slug:     ns.Text(node, "wp:category_nicename"),
			Name:     ns.Text(node, "wp:cat_name"),
			Parent:   ns.Text(node, "wp:category_parent"),
			Desc:     ns.Text(node, "wp:category_description"),
		})
	}

	for _, node := range ns.FindAll(channel, "wp:tag") {
		set.Add(Term{
			Taxonomy: "tag",
			Slug:     ns.Text(node, "wp:tag_slug"),
			Name:     ns.Text(node, "wp:tag_name"),
			Desc:     ns.Text(node, "wp:tag_description"),
		})
	}

	for _, node := range ns.FindAll(channel, "wp:term") {
		taxonomy := ns.Text(node, "wp:term_taxonomy")
		if taxonomy == "nav_menu" {
			continue
		}
		set.Add(Term{
			Taxonomy: taxonomy,
			Slug:     ns.Text(node, "wp:term_slug"),
			Name:     ns.Text(node, "wp:term_name"),
			Parent:   ns.Text(node, "wp:term_parent"),
			Desc:     ns.Text(node, "wp:term_description"),
		})
	}

	return set
}

// Render produces the outline, one taxonomy block per first-encountered
// taxonomy, terms in insertion order. Sub-fields per term, in order: slug
// (only when it differs from the name case-insensitively), parent (resolved
// to the parent's display name), desc. A parent slug that was never
// registered fails the run in strict mode and renders verbatim otherwise.
func (s *Set) Render(strict bool) ([]string, error) {

	res := []string{"taxonomy: "}

	for _, taxonomy := range s.order {
		res = append(res, "  - "+taxonomy+": ")

		for _, t := range s.terms[taxonomy] {
			var sub []string

			if t.Slug != "" && !strings.EqualFold(t.Slug, t.Name) {
				sub = append(sub, "        slug: "+t.Slug)
			}

			if t.Parent != "" {
				parent := decode(t.Parent)
				name, ok := s.names[taxonomy][parent]
				if !ok {
					if strict {
						return nil, fmt.Errorf(
							"taxonomy %q: parent slug %q is not registered",
							taxonomy, parent,
						)
					}
					name = parent
				}
				sub = append(sub, "        parent: "+name)
			}

			if t.Desc != "" {
				sub = append(sub, "        desc: "+t.Desc)
			}

			if len(sub) == 0 {
				res = append(res, "    - "+t.Name)
				continue
			}
			res = append(res, "    - "+t.Name+": ")
			res = append(res, sub...)
		}
	}

	return res, nil
}

// decode URL-decodes a slug, keeping it as-is when the escaping is broken.
func decode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
