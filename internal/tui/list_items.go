package tui

import (
	"notepress/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type notebookItem struct {
	notebook model.Notebook
	current  bool
}

func (i notebookItem) FilterValue() string { return i.notebook.Title }
func (i notebookItem) Title() string {
	if i.current {
		return i.notebook.Title + " " + glyphBullet
	}
	return i.notebook.Title
}
func (i notebookItem) Description() string { return i.notebook.ID }

type sectionItem struct {
	section model.Section
	current bool
}

func (i sectionItem) FilterValue() string { return i.section.Title }
func (i sectionItem) Title() string {
	if i.current {
		return i.section.Title + " " + glyphBullet
	}
	return i.section.Title
}
func (i sectionItem) Description() string { return i.section.ID }

type pageItem struct {
	page    model.Page
	current bool
}

func (i pageItem) FilterValue() string { return i.page.Title }
func (i pageItem) Title() string {
	t := i.page.Title
	if i.page.Starred {
		t = glyphStar + " " + t
	}
	if i.current {
		t += " " + glyphBullet
	}
	return t
}
func (i pageItem) Description() string { return i.page.UpdatedAt.Format("2006-01-02 15:04") }

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("page", "pages")
	// Bubble list defaults to quitting on ESC; here ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	l.SetDelegate(newCompactItemDelegate())
	return l
}
