package tree

import (
	"time"

	"notepress/internal/model"
)

// welcomeDocJSON is the content of the page a fresh store starts with.
const welcomeDocJSON = `{"type":"doc","content":[` +
	`{"type":"heading","attrs":{"level":1},"content":[{"type":"text","text":"Hello!"}]},` +
	`{"type":"paragraph","content":[{"type":"text","text":"This is your notebook blog. Only the admin can post or edit."}]},` +
	`{"type":"bulletList","content":[` +
	`{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"Create notebooks, sections and pages"}]}]},` +
	`{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"Rich-text pages with headings, lists and task lists"}]}]},` +
	`{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"Drag to reorder sections and pages"}]}]}` +
	`]}]}`

// Seed builds the tree a store starts with when no persisted state exists:
// one notebook, one section, one starred welcome page, all selected.
func Seed() *Snapshot {
	now := time.Now().UTC()
	s := &Snapshot{}
	nbID := s.newUniqueID("nb")
	secID := s.newUniqueID("sec")
	pageID := s.newUniqueID("page")

	s.Notebooks = []model.Notebook{{ID: nbID, Title: "Site"}}
	s.Sections = map[string][]model.Section{
		nbID: {{ID: secID, Title: "General"}},
	}
	s.Pages = map[string][]model.Page{
		secID: {{
			ID:        pageID,
			Title:     "Welcome",
			Content:   welcomeDocJSON,
			CreatedAt: now,
			UpdatedAt: now,
			Starred:   true,
		}},
	}
	s.UI = Selection{
		ActiveNotebookID: nbID,
		ActiveSectionID:  secID,
		ActivePageID:     pageID,
	}
	return s
}
