package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"notepress/internal/model"
	"notepress/internal/richtext"
	"notepress/internal/store"
	"notepress/internal/tree"

	"github.com/rs/zerolog"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr     string
	Dir      string
	ReadOnly bool
}

type Server struct {
	mu   sync.RWMutex
	cfg  ServerConfig
	tmpl *template.Template
	log  zerolog.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Dir == "" {
		return nil, errors.New("web: dir is empty")
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"pageHTML": renderPageHTML,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:  cfg,
		tmpl: tmpl,
		log:  zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) dir() string {
	s.mu.RLock()
	d := s.cfg.Dir
	s.mu.RUnlock()
	return d
}

func (s *Server) readOnly() bool {
	s.mu.RLock()
	ro := s.cfg.ReadOnly
	s.mu.RUnlock()
	return ro
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /notebooks/{notebookId}", s.handleNotebook)
	mux.HandleFunc("GET /sections/{sectionId}", s.handleSection)
	mux.HandleFunc("GET /sections/{sectionId}/search", s.handleSectionSearch)
	mux.HandleFunc("GET /pages/{pageId}", s.handlePage)

	mux.HandleFunc("GET /admin", s.handleAdminHome)
	mux.HandleFunc("POST /admin/notebooks", s.handleNotebookCreate)
	mux.HandleFunc("POST /admin/notebooks/{notebookId}/rename", s.handleNotebookRename)
	mux.HandleFunc("POST /admin/notebooks/{notebookId}/use", s.handleNotebookUse)
	mux.HandleFunc("POST /admin/sections", s.handleSectionCreate)
	mux.HandleFunc("POST /admin/sections/{sectionId}/rename", s.handleSectionRename)
	mux.HandleFunc("POST /admin/sections/{sectionId}/move", s.handleSectionMove)
	mux.HandleFunc("POST /admin/sections/{sectionId}/use", s.handleSectionUse)
	mux.HandleFunc("POST /admin/pages", s.handlePageCreate)
	mux.HandleFunc("GET /admin/pages/{pageId}/edit", s.handlePageEdit)
	mux.HandleFunc("POST /admin/pages/{pageId}", s.handlePageUpdate)
	mux.HandleFunc("POST /admin/pages/{pageId}/star", s.handlePageStar)
	mux.HandleFunc("POST /admin/pages/{pageId}/trash", s.handlePageTrash)
	mux.HandleFunc("POST /admin/pages/{pageId}/move", s.handlePageMove)
	mux.HandleFunc("POST /admin/pages/{pageId}/use", s.handlePageUse)

	return s.logRequests(adminGate(mux))
}

func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.cfg.Addr).Str("dir", s.cfg.Dir).Bool("readOnly", s.cfg.ReadOnly).Msg("serving")
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// load reads the current snapshot (seeded if the slot is missing or corrupt).
func (s *Server) load() *tree.Snapshot {
	return store.Store{Dir: s.dir()}.Load()
}

// apply runs one mutation against a freshly loaded snapshot and mirrors the
// result to the slot. A save failure is logged and swallowed: the request
// already succeeded in memory.
func (s *Server) apply(fn func(*tree.Snapshot) *tree.Snapshot) {
	st := store.Store{Dir: s.dir()}
	snap := st.Load()
	next := fn(snap)
	if next == snap {
		return
	}
	if err := st.Save(next); err != nil {
		s.log.Warn().Err(err).Msg("slot save failed; change is in-memory only")
	}
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	ref := strings.TrimSpace(r.Header.Get("Referer"))
	if ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type notebookRowVM struct {
	Notebook model.Notebook
	Active   bool
}

type homeVM struct {
	Title     string
	Notebooks []notebookRowVM
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap := s.load()
	vm := homeVM{Title: "Notebooks"}
	for _, nb := range snap.Notebooks {
		vm.Notebooks = append(vm.Notebooks, notebookRowVM{Notebook: nb, Active: nb.ID == snap.UI.ActiveNotebookID})
	}
	s.writeHTMLTemplate(w, "home", vm)
}

type sectionRowVM struct {
	Section model.Section
	Active  bool
}

type notebookVM struct {
	Title    string
	Notebook model.Notebook
	Sections []sectionRowVM
}

func (s *Server) handleNotebook(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("notebookId"))
	snap := s.load()
	nb, ok := snap.FindNotebook(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	vm := notebookVM{Title: nb.Title, Notebook: nb}
	for _, sec := range snap.SectionsOf(nb.ID) {
		vm.Sections = append(vm.Sections, sectionRowVM{Section: sec, Active: sec.ID == snap.UI.ActiveSectionID})
	}
	s.writeHTMLTemplate(w, "notebook", vm)
}

type pageRowVM struct {
	Page   model.Page
	Active bool
}

type sectionVM struct {
	Title    string
	Notebook model.Notebook
	Section  model.Section
	Pages    []pageRowVM
	Query    string
}

func (s *Server) sectionVM(snap *tree.Snapshot, sectionID, query string) (sectionVM, bool) {
	sec, nbID, ok := snap.FindSection(sectionID)
	if !ok {
		return sectionVM{}, false
	}
	nb, _ := snap.FindNotebook(nbID)
	vm := sectionVM{Title: sec.Title, Notebook: nb, Section: sec, Query: query}
	for _, p := range tree.FilterPages(snap.PagesOf(sec.ID), query) {
		vm.Pages = append(vm.Pages, pageRowVM{Page: p, Active: p.ID == snap.UI.ActivePageID})
	}
	return vm, true
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("sectionId"))
	snap := s.load()
	vm, ok := s.sectionVM(snap, id, "")
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeHTMLTemplate(w, "section", vm)
}

// handleSectionSearch streams the filtered page list as the search input
// changes; datastar swaps it into #page-list in place.
func (s *Server) handleSectionSearch(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("sectionId"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	snap := s.load()
	vm, ok := s.sectionVM(snap, id, query)
	if !ok {
		http.NotFound(w, r)
		return
	}
	html, err := s.renderTemplate("page_list", vm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(html,
		datastar.WithSelector("#page-list"),
		datastar.WithMode(datastar.ElementPatchModeInner),
	)
}

type pageVM struct {
	Title   string
	Section model.Section
	Page    model.Page
	Body    template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("pageId"))
	snap := s.load()
	p, secID, ok := snap.FindPage(id)
	if !ok || p.Trashed {
		http.NotFound(w, r)
		return
	}
	sec, _, _ := snap.FindSection(secID)
	s.writeHTMLTemplate(w, "page", pageVM{
		Title:   p.Title,
		Section: sec,
		Page:    p,
		Body:    renderPageHTML(p.Content),
	})
}

type adminVM struct {
	Title    string
	ReadOnly bool

	Notebooks []notebookRowVM
	Sections  []sectionRowVM
	Pages     []pageRowVM

	ActiveNotebook model.Notebook
	ActiveSection  model.Section
	HasNotebook    bool
	HasSection     bool
}

func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	snap := s.load()
	vm := adminVM{Title: "Admin", ReadOnly: s.readOnly()}
	for _, nb := range snap.Notebooks {
		vm.Notebooks = append(vm.Notebooks, notebookRowVM{Notebook: nb, Active: nb.ID == snap.UI.ActiveNotebookID})
	}
	if nb, ok := snap.FindNotebook(snap.UI.ActiveNotebookID); ok {
		vm.ActiveNotebook = nb
		vm.HasNotebook = true
		for _, sec := range snap.SectionsOf(nb.ID) {
			vm.Sections = append(vm.Sections, sectionRowVM{Section: sec, Active: sec.ID == snap.UI.ActiveSectionID})
		}
	}
	if sec, _, ok := snap.FindSection(snap.UI.ActiveSectionID); ok {
		vm.ActiveSection = sec
		vm.HasSection = true
		for _, p := range tree.FilterPages(snap.PagesOf(sec.ID), "") {
			vm.Pages = append(vm.Pages, pageRowVM{Page: p, Active: p.ID == snap.UI.ActivePageID})
		}
	}
	s.writeHTMLTemplate(w, "admin", vm)
}

func (s *Server) denyReadOnly(w http.ResponseWriter) bool {
	if s.readOnly() {
		http.Error(w, "read-only", http.StatusForbidden)
		return true
	}
	return false
}

func (s *Server) handleNotebookCreate(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	_ = r.ParseForm()
	title := strings.TrimSpace(r.Form.Get("title"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.CreateNotebook(true, title)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleNotebookRename(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("notebookId"))
	_ = r.ParseForm()
	title := strings.TrimSpace(r.Form.Get("title"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.RenameNotebook(true, id, title)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleNotebookUse(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("notebookId"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.SetActiveNotebook(id)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	_ = r.ParseForm()
	title := strings.TrimSpace(r.Form.Get("title"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.CreateSection(true, title)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleSectionRename(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("sectionId"))
	_ = r.ParseForm()
	title := strings.TrimSpace(r.Form.Get("title"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.RenameSection(true, id, title)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleSectionMove(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("sectionId"))
	_ = r.ParseForm()
	target := strings.TrimSpace(r.Form.Get("target"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.MoveSection(true, id, target)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handleSectionUse(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("sectionId"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.SetActiveSection(id)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	var createdID string
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		next := snap.CreatePage(true)
		if next != snap {
			createdID = next.UI.ActivePageID
		}
		return next
	})
	if createdID != "" {
		http.Redirect(w, r, "/admin/pages/"+createdID+"/edit", http.StatusSeeOther)
		return
	}
	redirectBack(w, r, "/admin")
}

type editVM struct {
	Title string
	Page  model.Page
	// Content is the stored document normalized through the parser so the
	// textarea always starts from a well-formed tree.
	Content string
}

func (s *Server) handlePageEdit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("pageId"))
	snap := s.load()
	p, _, ok := snap.FindPage(id)
	if !ok || p.Trashed {
		http.NotFound(w, r)
		return
	}
	s.writeHTMLTemplate(w, "edit", editVM{
		Title:   "Edit: " + p.Title,
		Page:    p,
		Content: richtext.Parse(p.Content).JSON(),
	})
}

func (s *Server) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("pageId"))
	_ = r.ParseForm()
	upd := tree.PageUpdate{}
	if r.Form.Has("title") {
		title := strings.TrimSpace(r.Form.Get("title"))
		upd.Title = &title
	}
	if r.Form.Has("content") {
		// Normalize through the parser: corrupt submissions become the empty
		// document instead of poisoning the slot.
		content := richtext.Parse(r.Form.Get("content")).JSON()
		upd.Content = &content
	}
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.UpdatePageContent(true, id, upd)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handlePageStar(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("pageId"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.ToggleStarPage(true, id)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handlePageTrash(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("pageId"))
	_ = r.ParseForm()
	confirmed := strings.TrimSpace(r.Form.Get("confirm")) == "yes"
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.TrashPage(true, id, func(string) bool { return confirmed })
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handlePageMove(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("pageId"))
	_ = r.ParseForm()
	target := strings.TrimSpace(r.Form.Get("target"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.MovePage(true, id, target)
	})
	redirectBack(w, r, "/admin")
}

func (s *Server) handlePageUse(w http.ResponseWriter, r *http.Request) {
	if s.denyReadOnly(w) {
		return
	}
	id := strings.TrimSpace(r.PathValue("pageId"))
	s.apply(func(snap *tree.Snapshot) *tree.Snapshot {
		return snap.SetActivePage(id)
	})
	redirectBack(w, r, "/admin")
}
