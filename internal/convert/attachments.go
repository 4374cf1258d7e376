package convert

import "wxr2txt/internal/wxr"

// buildAttachmentIndex maps attachment post IDs to their URLs in a single
// pass over all items. Attachment items without a post ID are skipped.
// Used only to resolve _thumbnail_id metadata on other items.
func buildAttachmentIndex(doc *wxr.Document, ns wxr.Namespaces) map[string]string {

	images := make(map[string]string)
	for _, item := range doc.Items() {
		if ns.Text(item, "wp:post_type") != "attachment" {
			continue
		}
		id := ns.Text(item, "wp:post_id")
		if id == "" {
			continue
		}
		images[id] = ns.Text(item, "wp:attachment_url")
	}

	return images
}
