package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"notepress/internal/tree"
)

type WriteOptions struct {
	IncludeTrashed bool
	Overwrite      bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

func WritePage(snap *tree.Snapshot, pageID, toDir string, opt WriteOptions) (WriteResult, error) {
	if snap == nil {
		return WriteResult{}, errors.New("missing snapshot")
	}
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return WriteResult{}, errors.New("missing pageID")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderPageMarkdown(snap, pageID, RenderOptions{IncludeTrashed: opt.IncludeTrashed})
	if err != nil {
		return WriteResult{}, err
	}

	outDir := filepath.Join(toDir, "pages")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, pageID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func WriteNotebook(snap *tree.Snapshot, notebookID, toDir string, opt WriteOptions) (WriteResult, error) {
	if snap == nil {
		return WriteResult{}, errors.New("missing snapshot")
	}
	notebookID = strings.TrimSpace(notebookID)
	nb, ok := snap.FindNotebook(notebookID)
	if !ok {
		return WriteResult{}, errors.New("notebook not found: " + notebookID)
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	written := []string{}
	for _, sec := range snap.SectionsOf(nb.ID) {
		secDir := filepath.Join(toDir, "notebooks", nb.ID, sec.ID)
		if err := os.MkdirAll(secDir, 0o755); err != nil {
			return WriteResult{}, err
		}

		indexMD := RenderSectionIndexMarkdown(snap, nb, sec, RenderOptions{IncludeTrashed: opt.IncludeTrashed})
		indexPath := filepath.Join(secDir, "index.md")
		if err := writeFile(indexPath, []byte(indexMD), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, indexPath)

		for _, p := range snap.PagesOf(sec.ID) {
			if p.Trashed && !opt.IncludeTrashed {
				continue
			}
			md, err := RenderPageMarkdown(snap, p.ID, RenderOptions{IncludeTrashed: opt.IncludeTrashed})
			if err != nil {
				return WriteResult{}, err
			}
			path := filepath.Join(secDir, p.ID+".md")
			if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
				return WriteResult{}, err
			}
			written = append(written, path)
		}
	}

	return WriteResult{Written: written}, nil
}

func WriteAll(snap *tree.Snapshot, toDir string, opt WriteOptions) (WriteResult, error) {
	if snap == nil {
		return WriteResult{}, errors.New("missing snapshot")
	}
	written := []string{}
	for _, nb := range snap.Notebooks {
		res, err := WriteNotebook(snap, nb.ID, toDir, opt)
		if err != nil {
			return WriteResult{}, err
		}
		written = append(written, res.Written...)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
