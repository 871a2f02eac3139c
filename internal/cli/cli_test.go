package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("command failed: notepress %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data to be an object; got: %#v", env["data"])
	}
	return m
}

func dataList(t *testing.T, env map[string]any) []any {
	t.Helper()
	xs, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected data to be a list; got: %#v", env["data"])
	}
	return xs
}

func TestInitSeedsDefaultTree(t *testing.T) {
	dir := t.TempDir()

	env := mustRun(t, "--dir", dir, "init")
	data := dataMap(t, env)
	if n, _ := data["notebooks"].(float64); n != 1 {
		t.Fatalf("expected 1 seeded notebook, got %v", data["notebooks"])
	}
	if _, err := os.Stat(filepath.Join(dir, "blog.json")); err != nil {
		t.Fatalf("expected slot file after init: %v", err)
	}

	list := dataList(t, mustRun(t, "--dir", dir, "notebooks", "list"))
	if len(list) != 1 {
		t.Fatalf("expected 1 notebook, got %d", len(list))
	}
	nb := list[0].(map[string]any)
	if nb["title"] != "Site" {
		t.Fatalf("expected seeded notebook Site, got %v", nb["title"])
	}
}

func TestNotebooksCreateSwitchesSelection(t *testing.T) {
	dir := t.TempDir()

	env := mustRun(t, "--dir", dir, "notebooks", "create", "--title", "Work")
	data := dataMap(t, env)
	if changed, _ := data["changed"].(bool); !changed {
		t.Fatalf("expected create to report changed, got %v", data)
	}
	nb, _ := data["notebook"].(map[string]any)
	id, _ := nb["id"].(string)
	if id == "" {
		t.Fatalf("expected created notebook id, got %#v", data["notebook"])
	}

	status := dataMap(t, mustRun(t, "--dir", dir, "status"))
	sel, _ := status["selection"].(map[string]any)
	if sel["activeNotebookId"] != id {
		t.Fatalf("expected selection to follow created notebook %q, got %v", id, sel)
	}
	if n, _ := status["notebooks"].(float64); n != 2 {
		t.Fatalf("expected 2 notebooks, got %v", status["notebooks"])
	}
}

func TestNotebooksRenameUnknownIDFails(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	_, stderr, err := runCLI(t, "", "--dir", dir, "notebooks", "rename", "nb_missing", "--title", "X")
	if err == nil {
		t.Fatalf("expected rename of unknown notebook to fail")
	}
	if !strings.Contains(string(stderr), "notebook not found") {
		t.Fatalf("expected not-found message, got: %s", string(stderr))
	}
}

func TestPagesLifecycle(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	created := dataMap(t, mustRun(t, "--dir", dir, "pages", "create"))
	page, _ := created["page"].(map[string]any)
	id, _ := page["id"].(string)
	if id == "" {
		t.Fatalf("expected created page id, got %#v", created)
	}
	if page["title"] != "Untitled" {
		t.Fatalf("expected fresh page to be Untitled, got %v", page["title"])
	}

	mustRun(t, "--dir", dir, "pages", "edit", id,
		"--title", "Release notes",
		"--content", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Shipped the thing."}]}]}`)

	shown := dataMap(t, mustRun(t, "--dir", dir, "pages", "show", id))
	md, _ := shown["markdown"].(string)
	if !strings.Contains(md, "Shipped the thing.") {
		t.Fatalf("expected rendered markdown to contain body, got:\n%s", md)
	}

	starred := dataMap(t, mustRun(t, "--dir", dir, "pages", "star", id))
	sp, _ := starred["page"].(map[string]any)
	if on, _ := sp["starred"].(bool); !on {
		t.Fatalf("expected star toggle on, got %v", sp)
	}

	trashed := dataMap(t, mustRun(t, "--dir", dir, "pages", "trash", id, "--yes"))
	if changed, _ := trashed["changed"].(bool); !changed {
		t.Fatalf("expected trash to report changed, got %v", trashed)
	}
	for _, it := range dataList(t, mustRun(t, "--dir", dir, "pages", "list")) {
		if it.(map[string]any)["id"] == id {
			t.Fatalf("expected trashed page to be hidden from list")
		}
	}
}

func TestPagesTrashPromptDefaultsToNo(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	created := dataMap(t, mustRun(t, "--dir", dir, "pages", "create"))
	page, _ := created["page"].(map[string]any)
	id, _ := page["id"].(string)

	stdout, _, err := runCLI(t, "\n", "--dir", dir, "pages", "trash", id)
	if err != nil {
		t.Fatalf("trash with declined prompt should not error: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\nstdout:\n%s", err, string(stdout))
	}
	if changed, _ := dataMap(t, env)["changed"].(bool); changed {
		t.Fatalf("expected declined trash to be a no-op")
	}

	pages := dataList(t, mustRun(t, "--dir", dir, "pages", "list"))
	found := false
	for _, it := range pages {
		if it.(map[string]any)["id"] == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected page to survive declined trash")
	}
}

func TestReadOnlyMutationsAreNoOps(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	env := mustRun(t, "--dir", dir, "--read-only", "notebooks", "create", "--title", "Nope")
	if changed, _ := dataMap(t, env)["changed"].(bool); changed {
		t.Fatalf("expected read-only create to be a no-op")
	}

	list := dataList(t, mustRun(t, "--dir", dir, "notebooks", "list"))
	if len(list) != 1 {
		t.Fatalf("expected only the seeded notebook, got %d", len(list))
	}
}

func TestSearchFiltersActiveSection(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	hit := dataMap(t, mustRun(t, "--dir", dir, "search", "hello"))
	if pages, _ := hit["pages"].([]any); len(pages) != 1 {
		t.Fatalf("expected seeded welcome page to match, got %#v", hit["pages"])
	}

	miss := dataMap(t, mustRun(t, "--dir", dir, "search", "zebra"))
	if pages, _ := miss["pages"].([]any); len(pages) != 0 {
		t.Fatalf("expected no matches, got %#v", miss["pages"])
	}
}

func TestPublishWritesMarkdownTree(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	nbs := dataList(t, mustRun(t, "--dir", dir, "notebooks", "list"))
	nbID := nbs[0].(map[string]any)["id"].(string)

	env := mustRun(t, "--dir", dir, "publish", "--to", out, "--notebook", nbID)
	data := dataMap(t, env)
	written, _ := data["written"].([]any)
	if len(written) == 0 {
		t.Fatalf("expected publish to report written files, got %#v", data)
	}
	for _, f := range written {
		if _, err := os.Stat(f.(string)); err != nil {
			t.Fatalf("reported file missing on disk: %v", err)
		}
	}
}

func TestSectionsMoveReorders(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")
	mustRun(t, "--dir", dir, "sections", "create", "--title", "Archive")

	secs := dataList(t, mustRun(t, "--dir", dir, "sections", "list"))
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	firstID := secs[0].(map[string]any)["id"].(string)
	lastID := secs[1].(map[string]any)["id"].(string)

	env := mustRun(t, "--dir", dir, "sections", "move", lastID, "--target", firstID)
	data := dataMap(t, env)
	moved, _ := data["sections"].([]any)
	if len(moved) != 2 || moved[0].(map[string]any)["id"] != lastID {
		t.Fatalf("expected moved section first, got %#v", data["sections"])
	}
}
