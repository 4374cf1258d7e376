package convert

import (
	"slices"
	"strings"

	"wxr2txt/internal/wxr"
)

// xmlTags returns the sorted, distinct cleaned tag names of the channel
// element and every element below it. A debug aid for eyeballing what a
// particular dump actually contains.
func (s *Service) xmlTags() []string {

	channel := s.doc.Channel()
	if channel == nil {
		return nil
	}

	var tags []string
	seen := make(map[string]bool)
	s.collectTags(&tags, seen, channel)
	slices.Sort(tags)
	return tags
}

func (s *Service) collectTags(tags *[]string, seen map[string]bool, node *wxr.Node) {
	tag := s.ns.CleanTag(node.XMLName)
	if !seen[tag] {
		seen[tag] = true
		*tags = append(*tags, tag)
	}
	for i := range node.Children {
		s.collectTags(tags, seen, &node.Children[i])
	}
}

// siteInfo renders the site block and returns the site base URL, which the
// serializer strips from item links.
func (s *Service) siteInfo() ([]string, string) {

	root := &s.doc.Root
	link := s.ns.Text(root, "channel/link")

	lines := []string{
		"site:",
		`  site_name: "` + s.ns.Text(root, "channel/title") + `"`,
		`  site_url: "` + link + `"`,
		`  site_desc: "` + s.ns.Text(root, "channel/description") + `"`,
		`  language: "` + s.ns.Text(root, "channel/language") + `"`,
	}

	return lines, link
}

// mainInfo renders the distinct post types, category domains and metadata
// keys observed across all items, one sorted section each.
func (s *Service) mainInfo() string {

	var postTypes, domains, metaKeys []string
	for _, item := range s.doc.Items() {
		s.collectMainInfo(&postTypes, &domains, &metaKeys, item)
	}

	sections := []string{
		"[ post_type ]\n" + strings.Join(sorted(postTypes), "\n"),
		"[ category ]\n" + strings.Join(sorted(domains), "\n"),
		"[ meta ]\n" + strings.Join(sorted(metaKeys), "\n"),
	}

	return strings.Join(sections, "\n\n")
}

func (s *Service) collectMainInfo(postTypes, domains, metaKeys *[]string, node *wxr.Node) {

	switch s.ns.CleanTag(node.XMLName) {
	case "wp:post_type":
		appendUnique(postTypes, node.Text)
	case "category":
		appendUnique(domains, node.Attr("domain"))
	case "wp:meta_key":
		appendUnique(metaKeys, node.Text)
	}

	for i := range node.Children {
		s.collectMainInfo(postTypes, domains, metaKeys, &node.Children[i])
	}
}

// authors renders the channel-level author declarations; nil when the dump
// has none, in which case no authors file is written.
func (s *Service) authors() []string {

	channel := s.doc.Channel()
	if channel == nil {
		return nil
	}

	nodes := s.ns.FindAll(channel, "wp:author")
	if len(nodes) == 0 {
		return nil
	}

	lines := []string{"authors:"}
	for _, node := range nodes {
		lines = append(lines,
			`  - login: "`+s.ns.Text(node, "wp:author_login")+`"`,
			`    email: "`+s.ns.Text(node, "wp:author_email")+`"`,
			`    name: "`+s.ns.Text(node, "wp:author_display_name")+`"`,
		)
	}

	return lines
}

func appendUnique(list *[]string, value string) {
	if value != "" && !slices.Contains(*list, value) {
		*list = append(*list, value)
	}
}

func sorted(list []string) []string {
	out := slices.Clone(list)
	slices.Sort(out)
	return out
}
