package tree

import (
	"strings"
	"time"

	"notepress/internal/model"
	"notepress/internal/richtext"
)

// Mutation operations.
//
// Every operation takes the current snapshot and returns the next one. All
// failed preconditions (not admin, blank title, missing active scope, unknown
// id) return the identical snapshot pointer with no partial state: the UI
// hides these controls from non-admins, so there is nothing to report.

// CreateNotebook appends a notebook with a fresh id and an empty section list,
// and moves the cursor to it.
func (s *Snapshot) CreateNotebook(isAdmin bool, title string) *Snapshot {
	title = strings.TrimSpace(title)
	if !isAdmin || blank(title) {
		return s
	}
	id := s.newUniqueID("nb")

	next := s.clone()
	next.Notebooks = append(append([]model.Notebook{}, s.Notebooks...), model.Notebook{ID: id, Title: title})
	next.Sections = cloneSections(s.Sections)
	next.Sections[id] = []model.Section{}
	next.UI = Selection{ActiveNotebookID: id}
	return next
}

// RenameNotebook replaces the title of the matching notebook only.
func (s *Snapshot) RenameNotebook(isAdmin bool, id, title string) *Snapshot {
	title = strings.TrimSpace(title)
	if !isAdmin || blank(title) {
		return s
	}
	idx := -1
	for i, nb := range s.Notebooks {
		if nb.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.Notebooks[idx].Title == title {
		return s
	}

	next := s.clone()
	next.Notebooks = append([]model.Notebook{}, s.Notebooks...)
	next.Notebooks[idx].Title = title
	return next
}

// CreateSection appends a section to the active notebook and selects it.
func (s *Snapshot) CreateSection(isAdmin bool, title string) *Snapshot {
	title = strings.TrimSpace(title)
	nbID := s.UI.ActiveNotebookID
	if !isAdmin || blank(title) || nbID == "" {
		return s
	}
	if _, ok := s.FindNotebook(nbID); !ok {
		return s
	}
	id := s.newUniqueID("sec")

	next := s.clone()
	next.Sections = cloneSections(s.Sections)
	next.Sections[nbID] = append(append([]model.Section{}, s.Sections[nbID]...), model.Section{ID: id, Title: title})
	next.UI.ActiveSectionID = id
	next.UI.ActivePageID = ""
	return next
}

// RenameSection renames a section of the active notebook.
func (s *Snapshot) RenameSection(isAdmin bool, id, title string) *Snapshot {
	title = strings.TrimSpace(title)
	nbID := s.UI.ActiveNotebookID
	if !isAdmin || blank(title) || nbID == "" {
		return s
	}
	secs := s.Sections[nbID]
	idx := -1
	for i, sec := range secs {
		if sec.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || secs[idx].Title == title {
		return s
	}

	next := s.clone()
	next.Sections = cloneSections(s.Sections)
	copied := append([]model.Section{}, secs...)
	copied[idx].Title = title
	next.Sections[nbID] = copied
	return next
}

// CreatePage inserts an untitled page at the front of the active section's
// page list (most-recent-first) and selects it.
func (s *Snapshot) CreatePage(isAdmin bool) *Snapshot {
	secID := s.UI.ActiveSectionID
	if !isAdmin || secID == "" || !s.sectionExists(secID) {
		return s
	}
	now := time.Now().UTC()
	page := model.Page{
		ID:        s.newUniqueID("page"),
		Title:     "Untitled",
		Content:   richtext.EmptyDocJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := s.clone()
	next.Pages = clonePages(s.Pages)
	next.Pages[secID] = append([]model.Page{page}, s.Pages[secID]...)
	next.UI.ActivePageID = page.ID
	return next
}

// PageUpdate carries the fields UpdatePageContent should touch; nil fields are
// retained unchanged.
type PageUpdate struct {
	Title   *string
	Content *string
}

// UpdatePageContent updates the provided fields of a page in the active
// section and stamps UpdatedAt.
func (s *Snapshot) UpdatePageContent(isAdmin bool, id string, upd PageUpdate) *Snapshot {
	secID := s.UI.ActiveSectionID
	if !isAdmin || secID == "" {
		return s
	}
	if upd.Title == nil && upd.Content == nil {
		return s
	}
	pages := s.Pages[secID]
	idx := -1
	for i, p := range pages {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	next := s.clone()
	next.Pages = clonePages(s.Pages)
	copied := append([]model.Page{}, pages...)
	if upd.Title != nil {
		copied[idx].Title = *upd.Title
	}
	if upd.Content != nil {
		copied[idx].Content = *upd.Content
	}
	copied[idx].UpdatedAt = time.Now().UTC()
	next.Pages[secID] = copied
	return next
}

// ToggleStarPage flips the starred flag of a page in the active section.
func (s *Snapshot) ToggleStarPage(isAdmin bool, id string) *Snapshot {
	secID := s.UI.ActiveSectionID
	if !isAdmin || secID == "" {
		return s
	}
	pages := s.Pages[secID]
	idx := -1
	for i, p := range pages {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	next := s.clone()
	next.Pages = clonePages(s.Pages)
	copied := append([]model.Page{}, pages...)
	copied[idx].Starred = !copied[idx].Starred
	next.Pages[secID] = copied
	return next
}

// TrashPage soft-deletes a page in the active section after the confirm
// collaborator agrees. A nil confirm means the caller already confirmed.
func (s *Snapshot) TrashPage(isAdmin bool, id string, confirm func(string) bool) *Snapshot {
	secID := s.UI.ActiveSectionID
	if !isAdmin || secID == "" {
		return s
	}
	pages := s.Pages[secID]
	idx := -1
	for i, p := range pages {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || pages[idx].Trashed {
		return s
	}
	if confirm != nil && !confirm("Move page to Trash?") {
		return s
	}

	next := s.clone()
	next.Pages = clonePages(s.Pages)
	copied := append([]model.Page{}, pages...)
	copied[idx].Trashed = true
	next.Pages[secID] = copied
	if next.UI.ActivePageID == id {
		next.UI.ActivePageID = ""
	}
	return next
}

// SetActiveNotebook moves the cursor to a notebook. The notebook's first
// section becomes active when one exists; the page selection is cleared.
// Navigation is not admin-gated: read-only viewers select too.
func (s *Snapshot) SetActiveNotebook(id string) *Snapshot {
	if _, ok := s.FindNotebook(id); !ok {
		return s
	}
	sel := Selection{ActiveNotebookID: id}
	if secs := s.Sections[id]; len(secs) > 0 {
		sel.ActiveSectionID = secs[0].ID
	}
	if s.UI == sel {
		return s
	}
	next := s.clone()
	next.UI = sel
	return next
}

// SetActiveSection moves the cursor to a section of the active notebook and
// clears the page selection.
func (s *Snapshot) SetActiveSection(id string) *Snapshot {
	if !s.sectionExistsIn(s.UI.ActiveNotebookID, id) {
		return s
	}
	sel := s.UI
	sel.ActiveSectionID = id
	sel.ActivePageID = ""
	if s.UI == sel {
		return s
	}
	next := s.clone()
	next.UI = sel
	return next
}

// SetActivePage moves the cursor to a non-trashed page of the active section.
func (s *Snapshot) SetActivePage(id string) *Snapshot {
	found := false
	for _, p := range s.Pages[s.UI.ActiveSectionID] {
		if p.ID == id && !p.Trashed {
			found = true
			break
		}
	}
	if !found || s.UI.ActivePageID == id {
		return s
	}
	next := s.clone()
	next.UI.ActivePageID = id
	return next
}

// MoveSection reorders the active notebook's sections, placing the moved
// section at the target's position.
func (s *Snapshot) MoveSection(isAdmin bool, movedID, targetID string) *Snapshot {
	nbID := s.UI.ActiveNotebookID
	if !isAdmin || nbID == "" {
		return s
	}
	secs := s.Sections[nbID]
	reordered := Reorder(secs, func(sec model.Section) string { return sec.ID }, movedID, targetID)
	if sameSlice(reordered, secs) {
		return s
	}
	next := s.clone()
	next.Sections = cloneSections(s.Sections)
	next.Sections[nbID] = reordered
	return next
}

// MovePage reorders the active section's pages, placing the moved page at the
// target's position.
func (s *Snapshot) MovePage(isAdmin bool, movedID, targetID string) *Snapshot {
	secID := s.UI.ActiveSectionID
	if !isAdmin || secID == "" {
		return s
	}
	pages := s.Pages[secID]
	reordered := Reorder(pages, func(p model.Page) string { return p.ID }, movedID, targetID)
	if sameSlice(reordered, pages) {
		return s
	}
	next := s.clone()
	next.Pages = clonePages(s.Pages)
	next.Pages[secID] = reordered
	return next
}
