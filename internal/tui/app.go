package tui

import (
	"strings"
	"time"

	"notepress/internal/model"
	"notepress/internal/richtext"
	"notepress/internal/store"
	"notepress/internal/tree"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appView int

const (
	viewNotebooks appView = iota
	viewSections
	viewPages
)

type reloadTickMsg struct{}

const reloadInterval = 2 * time.Second

type appModel struct {
	dir   string
	store store.Store
	snap  *tree.Snapshot

	view      appView
	notebooks list.Model
	sections  list.Model
	pages     list.Model

	curNotebook model.Notebook
	curSection  model.Section

	width   int
	height  int
	lastMod time.Time
}

func newAppModel(dir string) appModel {
	st := store.Store{Dir: dir}
	m := appModel{
		dir:       dir,
		store:     st,
		view:      viewNotebooks,
		notebooks: newList("Notebooks", nil),
		sections:  newList("Sections", nil),
		pages:     newList("Pages", nil),
	}
	m.reload()
	return m
}

// reload re-reads the slot and rebuilds every list. The section/page drill-in
// survives a reload as long as the ids still exist.
func (m *appModel) reload() {
	m.snap = m.store.Load()
	m.lastMod = m.store.SlotModTime()

	var nbItems []list.Item
	for _, nb := range m.snap.Notebooks {
		nbItems = append(nbItems, notebookItem{notebook: nb, current: nb.ID == m.snap.UI.ActiveNotebookID})
	}
	m.notebooks.SetItems(nbItems)

	if nb, ok := m.snap.FindNotebook(m.curNotebook.ID); ok {
		m.curNotebook = nb
	} else if m.view != viewNotebooks {
		m.view = viewNotebooks
		m.curNotebook = model.Notebook{}
		m.curSection = model.Section{}
	}
	m.rebuildSections()
	if _, _, ok := m.snap.FindSection(m.curSection.ID); !ok && m.view == viewPages {
		m.view = viewSections
		m.curSection = model.Section{}
	}
	m.rebuildPages()
}

func (m *appModel) rebuildSections() {
	var items []list.Item
	for _, sec := range m.snap.SectionsOf(m.curNotebook.ID) {
		items = append(items, sectionItem{section: sec, current: sec.ID == m.snap.UI.ActiveSectionID})
	}
	m.sections.SetItems(items)
}

func (m *appModel) rebuildPages() {
	var items []list.Item
	for _, p := range tree.FilterPages(m.snap.PagesOf(m.curSection.ID), "") {
		items = append(items, pageItem{page: p, current: p.ID == m.snap.UI.ActivePageID})
	}
	m.pages.SetItems(items)
}

func reloadTick() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Init() tea.Cmd {
	return reloadTick()
}

func (m *appModel) activeList() *list.Model {
	switch m.view {
	case viewSections:
		return &m.sections
	case viewPages:
		return &m.pages
	default:
		return &m.notebooks
	}
}

// persistSelection mirrors a cursor move to the slot so the CLI and web see
// the same active path.
func (m *appModel) persistSelection(next *tree.Snapshot) {
	if next == m.snap {
		return
	}
	m.snap = next
	_ = m.store.Save(next)
	m.lastMod = m.store.SlotModTime()
}

func (m *appModel) resize() {
	chrome := 4 // header, breadcrumb, footer, spacing
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	listW := m.width
	if m.view == viewPages {
		listW = m.width * 2 / 5
	}
	if listW < 20 {
		listW = 20
	}
	m.notebooks.SetSize(m.width, h)
	m.sections.SetSize(m.width, h)
	m.pages.SetSize(listW, h)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadTickMsg:
		if mod := m.store.SlotModTime(); !mod.Equal(m.lastMod) {
			m.reload()
			m.resize()
		}
		return m, reloadTick()

	case tea.KeyMsg:
		l := m.activeList()
		if l.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "l", "right":
			return m.drillIn()
		case "esc", "h", "left":
			return m.drillOut()
		case "r":
			m.reload()
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewSections:
		m.sections, cmd = m.sections.Update(msg)
	case viewPages:
		m.pages, cmd = m.pages.Update(msg)
	default:
		m.notebooks, cmd = m.notebooks.Update(msg)
	}
	return m, cmd
}

func (m appModel) drillIn() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewNotebooks:
		it, ok := m.notebooks.SelectedItem().(notebookItem)
		if !ok {
			return m, nil
		}
		m.curNotebook = it.notebook
		m.persistSelection(m.snap.SetActiveNotebook(it.notebook.ID))
		m.view = viewSections
		m.rebuildSections()
	case viewSections:
		it, ok := m.sections.SelectedItem().(sectionItem)
		if !ok {
			return m, nil
		}
		m.curSection = it.section
		m.persistSelection(m.snap.SetActiveSection(it.section.ID))
		m.view = viewPages
		m.rebuildPages()
	case viewPages:
		it, ok := m.pages.SelectedItem().(pageItem)
		if !ok {
			return m, nil
		}
		m.persistSelection(m.snap.SetActivePage(it.page.ID))
		m.rebuildPages()
	}
	m.resize()
	return m, nil
}

func (m appModel) drillOut() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewPages:
		m.view = viewSections
	case viewSections:
		m.view = viewNotebooks
	}
	m.resize()
	return m, nil
}

func (m appModel) breadcrumb() string {
	parts := []string{"Notebooks"}
	if m.view >= viewSections && m.curNotebook.ID != "" {
		parts = append(parts, m.curNotebook.Title)
	}
	if m.view >= viewPages && m.curSection.ID != "" {
		parts = append(parts, m.curSection.Title)
	}
	return styleCrumbs.Render(strings.Join(parts, " > "))
}

func (m appModel) footer() string {
	switch m.view {
	case viewPages:
		return styleFooter.Render("enter select · esc back · / filter · r reload · q quit")
	default:
		return styleFooter.Render("enter open · esc back · / filter · r reload · q quit")
	}
}

func (m appModel) previewPane(width, height int) string {
	it, ok := m.pages.SelectedItem().(pageItem)
	if !ok {
		return styleBorder.Width(width).Render("No page selected.")
	}
	doc := richtext.Parse(it.page.Content)
	md := "# " + it.page.Title + "\n\n" + richtext.Markdown(doc)
	body := renderMarkdown(md, width-4)
	return styleBorder.Width(width).Render(clampBlock(body, width-4, height))
}

func (m appModel) View() string {
	header := styleHeader.Render("notepress")
	crumb := m.breadcrumb()

	var body string
	switch m.view {
	case viewPages:
		listW := m.pages.Width()
		prevW := m.width - listW - 2
		if prevW < 20 {
			prevW = 20
		}
		chrome := 4
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.pages.View(),
			m.previewPane(prevW, m.height-chrome),
		)
	case viewSections:
		body = m.sections.View()
	default:
		body = m.notebooks.View()
	}

	return header + "\n" + crumb + "\n" + body + "\n" + m.footer()
}
