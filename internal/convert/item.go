package convert

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"wxr2txt/internal/wxr"
)

// statusDirs are the statuses routed to a status-rooted output directory
// instead of a post-type one.
var statusDirs = []string{
	"draft", "future", "pending", "private", "trash", "auto-draft", "inherit",
}

var stripPolicy = bluemonday.StrictPolicy()

// serializeItem writes one content item as a front-matter style record and
// appends its log line. Attachment items are never serialized; they were
// already consumed by the attachment index and only get a log line.
func (s *Service) serializeItem(item *wxr.Node) error {

	id := s.ns.Text(item, "wp:post_id")
	title := s.ns.Text(item, "title")

	if s.ns.Text(item, "wp:post_type") == "attachment" {
		s.log = append(s.log, "ID: "+id+" pass(attachment) "+title)
		return nil
	}

	texts := []string{"---"}
	texts = append(texts, `title: "`+strings.ReplaceAll(title, `"`, "&quot;")+`"`)

	if link := s.ns.Text(item, "link"); link != "" {
		texts = append(texts, `link: "`+link+`"`)
		if !strings.Contains(link, "?") {
			texts = append(texts, `url: "`+strings.ReplaceAll(link, s.siteLink, "")+`"`)
		}
	}

	if desc := s.ns.QuotedText(item, "description"); desc != "" {
		texts = append(texts, "description: "+desc)
	}

	if excerpt := plainText(s.ns.Text(item, "excerpt:encoded")); excerpt != "" {
		texts = append(texts, `excerpt: "`+excerpt+`"`)
	}

	if author := s.ns.QuotedText(item, "dc:creator"); author != "" {
		texts = append(texts, "author: "+author)
	}

	if date := s.ns.Text(item, "wp:post_date"); date != "" {
		texts = append(texts, "date: "+date)
	}

	if postType := s.ns.QuotedText(item, "wp:post_type"); postType != "" {
		texts = append(texts, "post_type: "+postType)
	}

	if status := s.ns.QuotedText(item, "wp:status"); status != "" {
		texts = append(texts, "status: "+status)
	}

	if order := s.ns.Text(item, "wp:menu_order"); order != "" {
		texts = append(texts, "order: "+order)
	}

	// Taxonomy assignments and custom metadata merge into one key->values
	// map; categories register their key first, even when the value turns
	// out to be empty.
	groups := newGroups()
	for _, cat := range s.ns.FindAll(item, "category") {
		domain := cat.Attr("domain")
		if domain == "" {
			continue
		}
		if domain == "post_tag" {
			domain = "tag"
		}
		groups.ensure(domain)

		value := strings.ReplaceAll(cat.Text, `"`, "'")
		if value == "" {
			continue
		}
		groups.add(domain, quoteScalar(value))
	}

	// Only the first thumbnail reference that resolves against the
	// attachment index becomes the image; every other _-prefixed key is
	// internal and dropped.
	imageWanted := true
	for _, meta := range s.ns.FindAll(item, "wp:postmeta") {
		key := s.ns.Text(meta, "wp:meta_key")
		value := s.ns.Text(meta, "wp:meta_value")

		if key == "_thumbnail_id" && imageWanted {
			if url, known := s.images[value]; known {
				texts = append(texts, "image: ", "  src: "+url)
				imageWanted = false
				continue
			}
		}
		if value == "" {
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}
		if key == "post_tag" {
			key = "tag"
		}

		value = strings.ReplaceAll(value, `"`, "'")
		groups.add(key, quoteScalar(value))
	}

	texts = append(texts, groups.lines()...)
	texts = append(texts, "---")

	if content := s.ns.Text(item, "content:encoded"); content != "" {
		texts = append(texts, content)
	}

	relPath := s.outputPath(item, id, title)
	full := filepath.Join(s.destDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("could not create dir for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, []byte(strings.Join(texts, "\n")), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", relPath, err)
	}

	memo := "ID: " + id
	if id == "" {
		memo = "pubDate: " + s.ns.Text(item, "pubDate")
	}
	s.log = append(s.log, memo+" "+relPath)

	return nil
}

// outputPath derives the relative output path of an item: a compact
// timestamp plus post ID (or a truncated title when the ID is empty) under
// <status-or-posttype>/<year>/<month>. Two items mapping to the same path
// overwrite each other; that is a documented limitation, not an error.
func (s *Service) outputPath(item *wxr.Node, id, title string) string {

	postDate := s.ns.Text(item, "wp:post_date")

	stamp := strings.NewReplacer("-", "", ":", "").Replace(postDate)
	stamp = strings.ReplaceAll(stamp, " ", "-")

	filename := stamp + "-" + id + ".txt"
	if id == "" {
		filename = stamp + "-" + truncate(title, 100) + ".txt"
	}

	root := s.ns.Text(item, "wp:post_type")
	if status := s.ns.Text(item, "wp:status"); slices.Contains(statusDirs, status) {
		root = status
	}

	segments := []string{root}
	date, _, _ := strings.Cut(postDate, " ")
	for part := range strings.SplitSeq(date, "-") {
		if part != "" && len(segments) < 3 {
			segments = append(segments, part)
		}
	}

	return path.Join(append(segments, filename)...)
}

// groupedValues is an insertion-ordered key -> list-of-values map
type groupedValues struct {
	order  []string
	values map[string][]string
}

func newGroups() *groupedValues {
	return &groupedValues{values: make(map[string][]string)}
}

func (g *groupedValues) ensure(key string) {
	if _, seen := g.values[key]; !seen {
		g.order = append(g.order, key)
		g.values[key] = []string{}
	}
}

func (g *groupedValues) add(key, value string) {
	g.ensure(key)
	g.values[key] = append(g.values[key], value)
}

// lines renders one "key: [v1, v2]" line per key, in first-seen order
func (g *groupedValues) lines() []string {
	var lines []string
	for _, key := range g.order {
		lines = append(lines, key+": ["+strings.Join(g.values[key], ", ")+"]")
	}
	return lines
}

// quoteScalar leaves purely decimal values bare and quotes everything else
func quoteScalar(value string) string {
	if isDecimal(value) {
		return value
	}
	return `"` + value + `"`
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// truncate cuts a string to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// plainText strips the markup from an encoded excerpt
func plainText(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}
