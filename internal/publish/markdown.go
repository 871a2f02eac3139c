package publish

import (
	"bytes"
	"fmt"
	"strings"

	"notepress/internal/model"
	"notepress/internal/richtext"
	"notepress/internal/tree"
)

type RenderOptions struct {
	IncludeTrashed bool
}

func RenderPageMarkdown(snap *tree.Snapshot, pageID string, opt RenderOptions) (string, error) {
	if snap == nil {
		return "", fmt.Errorf("missing snapshot")
	}
	p, secID, ok := snap.FindPage(strings.TrimSpace(pageID))
	if !ok {
		return "", fmt.Errorf("page not found: %s", pageID)
	}
	if p.Trashed && !opt.IncludeTrashed {
		return "", fmt.Errorf("page trashed (use --include-trashed): %s", p.ID)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = "(untitled)"
	}
	writeLn("# " + title)
	writeLn("")

	sectionTitle := ""
	if sec, _, ok := snap.FindSection(secID); ok {
		sectionTitle = strings.TrimSpace(sec.Title)
	}

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + p.ID)
	if sectionTitle != "" {
		writeLn("- Section: " + sectionTitle + " (" + secID + ")")
	} else {
		writeLn("- Section: " + secID)
	}
	writeLn("- Created: " + p.CreatedAt.UTC().Format("2006-01-02 15:04"))
	writeLn("- Updated: " + p.UpdatedAt.UTC().Format("2006-01-02 15:04"))
	if p.Starred {
		writeLn("- Starred: yes")
	}
	if p.Trashed {
		writeLn("- Trashed: yes")
	}
	writeLn("")

	body := strings.TrimSpace(richtext.Markdown(richtext.Parse(p.Content)))
	if body != "" {
		writeLn(body)
	}
	return buf.String(), nil
}

func RenderSectionIndexMarkdown(snap *tree.Snapshot, nb model.Notebook, sec model.Section, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(nb.Title) + " / " + strings.TrimSpace(sec.Title))
	writeLn("")
	for _, p := range snap.PagesOf(sec.ID) {
		if p.Trashed && !opt.IncludeTrashed {
			continue
		}
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = "(untitled)"
		}
		line := "- [" + title + "](" + p.ID + ".md)"
		if p.Starred {
			line += " ★"
		}
		writeLn(line)
	}
	return buf.String()
}
