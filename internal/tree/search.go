package tree

import (
	"strings"

	"notepress/internal/model"
	"notepress/internal/richtext"
)

// FilterPages returns the visible subset of pages for a query. Trashed pages
// are always excluded. A blank query keeps every remaining page; otherwise a
// page matches when the query is a case-insensitive substring of its title or
// of its flattened content text. Result order is the input order: no ranking.
func FilterPages(pages []model.Page, query string) []model.Page {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Page, 0, len(pages))
	for _, p := range pages {
		if p.Trashed {
			continue
		}
		if query == "" {
			out = append(out, p)
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
			continue
		}
		if strings.Contains(richtext.SearchableText(p.Content), query) {
			out = append(out, p)
		}
	}
	return out
}
