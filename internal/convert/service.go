// Package convert runs the conversion pipeline: one WXR export in, a
// directory of per-item text records and summary files out.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wxr2txt/internal/config"
	"wxr2txt/internal/taxonomy"
	"wxr2txt/internal/wxr"
)

type Service struct {
	config *config.Config
	doc    *wxr.Document

	// Populated by Run, in pipeline order. The namespace map and the
	// attachment index are write-once and read-only afterwards; the run
	// log is append-only, one line per item.
	ns       wxr.Namespaces
	siteLink string
	images   map[string]string
	log      []string
	destDir  string
}

// New creates a conversion service for a parsed export
func New(cfg *config.Config, doc *wxr.Document) *Service {
	return &Service{config: cfg, doc: doc}
}

// Run executes the whole pipeline against destDir: resolve namespaces,
// write the summaries and the taxonomy tree, index the attachments, then
// serialize every content item and write the run log.
func (s *Service) Run(destDir string) error {

	s.destDir = destDir
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", destDir, err)
	}

	s.ns = wxr.ResolveNamespaces(s.doc)

	if err := s.writeText("xml_tags.txt", strings.Join(s.xmlTags(), "\n")); err != nil {
		return err
	}

	siteLines, siteLink := s.siteInfo()
	s.siteLink = siteLink
	if err := s.writeText("site_info.txt", strings.Join(siteLines, "\n")); err != nil {
		return err
	}

	if err := s.writeText("main_info.txt", s.mainInfo()); err != nil {
		return err
	}

	if lines := s.authors(); len(lines) > 0 {
		if err := s.writeText("authors.txt", strings.Join(lines, "\n")); err != nil {
			return err
		}
	}

	tree, err := taxonomy.Build(s.doc, s.ns).Render(s.config.Strict)
	if err != nil {
		return err
	}
	if err := s.writeText("tax_tree.txt", strings.Join(tree, "\n")); err != nil {
		return err
	}

	// The index must be complete before any item is serialized; a post
	// may reference an attachment declared later in the document.
	s.images = buildAttachmentIndex(s.doc, s.ns)

	for _, item := range s.doc.Items() {
		if err := s.serializeItem(item); err != nil {
			return err
		}
	}

	return s.writeText("log.txt", strings.Join(s.log, "\n"))
}

// writeText writes one output file under the destination directory
func (s *Service) writeText(name, content string) error {
	full := filepath.Join(s.destDir, filepath.FromSlash(name))
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", name, err)
	}
	return nil
}
