package tree

import (
	"strings"

	"notepress/internal/model"
)

// Selection is the cursor into the tree: the currently displayed notebook,
// section, and page. Fields are unset ("") or reference existing ids.
type Selection struct {
	ActiveNotebookID string `json:"activeNotebookId,omitempty"`
	ActiveSectionID  string `json:"activeSectionId,omitempty"`
	ActivePageID     string `json:"activePageId,omitempty"`
}

// Snapshot is the full notebook tree plus selection cursor at one point in
// time. Snapshots are replaced, never mutated: every operation returns a new
// snapshot, or the identical pointer when nothing changed, so callers can
// detect change by comparing references. The JSON form of Snapshot is exactly
// what the persistence slot stores.
type Snapshot struct {
	Notebooks []model.Notebook           `json:"notebooks"`
	Sections  map[string][]model.Section `json:"sections"`
	Pages     map[string][]model.Page    `json:"pages"`
	UI        Selection                  `json:"ui"`
}

// clone returns a shallow copy. Mutating operations copy the specific slice or
// map they touch before writing (copy-on-write), so earlier snapshots stay
// intact.
func (s *Snapshot) clone() *Snapshot {
	next := *s
	return &next
}

func cloneSections(m map[string][]model.Section) map[string][]model.Section {
	out := make(map[string][]model.Section, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePages(m map[string][]model.Page) map[string][]model.Page {
	out := make(map[string][]model.Page, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Snapshot) FindNotebook(id string) (model.Notebook, bool) {
	for _, nb := range s.Notebooks {
		if nb.ID == id {
			return nb, true
		}
	}
	return model.Notebook{}, false
}

// FindSection locates a section anywhere in the tree and reports its notebook.
func (s *Snapshot) FindSection(id string) (model.Section, string, bool) {
	for nbID, secs := range s.Sections {
		for _, sec := range secs {
			if sec.ID == id {
				return sec, nbID, true
			}
		}
	}
	return model.Section{}, "", false
}

// FindPage locates a page anywhere in the tree and reports its section.
func (s *Snapshot) FindPage(id string) (model.Page, string, bool) {
	for secID, pages := range s.Pages {
		for _, p := range pages {
			if p.ID == id {
				return p, secID, true
			}
		}
	}
	return model.Page{}, "", false
}

// SectionsOf returns the ordered sections of a notebook.
func (s *Snapshot) SectionsOf(notebookID string) []model.Section {
	return s.Sections[notebookID]
}

// PagesOf returns the ordered pages of a section, trashed included.
func (s *Snapshot) PagesOf(sectionID string) []model.Page {
	return s.Pages[sectionID]
}

// ActiveSections returns the sections of the active notebook.
func (s *Snapshot) ActiveSections() []model.Section {
	return s.Sections[s.UI.ActiveNotebookID]
}

// ActivePages returns the pages of the active section, trashed included.
func (s *Snapshot) ActivePages() []model.Page {
	return s.Pages[s.UI.ActiveSectionID]
}

// ActivePage returns the active page if it exists and is not trashed.
func (s *Snapshot) ActivePage() (model.Page, bool) {
	for _, p := range s.ActivePages() {
		if p.ID == s.UI.ActivePageID && !p.Trashed {
			return p, true
		}
	}
	return model.Page{}, false
}

func (s *Snapshot) sectionExistsIn(notebookID, sectionID string) bool {
	for _, sec := range s.Sections[notebookID] {
		if sec.ID == sectionID {
			return true
		}
	}
	return false
}

// sectionExists reports whether the section id belongs to any notebook's
// section list (the ownership invariant for pages).
func (s *Snapshot) sectionExists(sectionID string) bool {
	_, _, ok := s.FindSection(sectionID)
	return ok
}

func (s *Snapshot) idInUse(id string) bool {
	if _, ok := s.FindNotebook(id); ok {
		return true
	}
	if _, _, ok := s.FindSection(id); ok {
		return true
	}
	if _, _, ok := s.FindPage(id); ok {
		return true
	}
	return false
}

// Normalize repairs a freshly loaded snapshot in place: nil maps become empty,
// every notebook gets a section-list entry, and selection cursor fields that
// no longer resolve are cleared. Mutation operations keep these invariants on
// their own; Normalize only guards the storage boundary.
func (s *Snapshot) Normalize() {
	if s.Sections == nil {
		s.Sections = map[string][]model.Section{}
	}
	if s.Pages == nil {
		s.Pages = map[string][]model.Page{}
	}
	for _, nb := range s.Notebooks {
		if _, ok := s.Sections[nb.ID]; !ok {
			s.Sections[nb.ID] = []model.Section{}
		}
	}
	if s.UI.ActiveNotebookID != "" {
		if _, ok := s.FindNotebook(s.UI.ActiveNotebookID); !ok {
			s.UI = Selection{}
		}
	}
	if s.UI.ActiveSectionID != "" && !s.sectionExistsIn(s.UI.ActiveNotebookID, s.UI.ActiveSectionID) {
		s.UI.ActiveSectionID = ""
		s.UI.ActivePageID = ""
	}
	if s.UI.ActivePageID != "" {
		found := false
		for _, p := range s.Pages[s.UI.ActiveSectionID] {
			if p.ID == s.UI.ActivePageID {
				found = true
				break
			}
		}
		if !found {
			s.UI.ActivePageID = ""
		}
	}
}

func blank(title string) bool {
	return strings.TrimSpace(title) == ""
}
