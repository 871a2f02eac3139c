package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// slotFiles are the store files worth versioning. Derived SQLite artifacts
// (-wal, -shm) stay local-only.
var slotFiles = []string{"blog.json", "blog.sqlite"}

// CommitSlot stages the store's slot files and commits them. Returns
// committed=false when the dir is not inside a git repo or nothing changed.
func CommitSlot(ctx context.Context, storeDir string, message string) (committed bool, err error) {
	storeDir = filepath.Clean(storeDir)

	st, err := GetStatus(ctx, storeDir)
	if err != nil {
		return false, err
	}
	if !st.IsRepo {
		return false, nil
	}
	if st.Unmerged || st.InProgress {
		return false, errors.New("git repo has an in-progress merge/rebase; resolve first")
	}

	added, err := stageSlot(ctx, storeDir, st.Root)
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}

	// Commit only if there's something staged.
	out, err := git(ctx, storeDir, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(out) == "" {
		return false, nil
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = fmt.Sprintf("notepress: update (%s)", time.Now().UTC().Format(time.RFC3339))
	}

	if _, err := git(ctx, storeDir, "commit", "-m", msg); err != nil {
		return false, err
	}
	return true, nil
}

func stageSlot(ctx context.Context, storeDir string, repoRoot string) (bool, error) {
	storeDir = filepath.Clean(storeDir)
	repoRoot = filepath.Clean(repoRoot)

	// Temp dirs may involve symlinks like /var -> /private/var on macOS. Git
	// reports a canonicalized root, so normalize both sides before Rel().
	if v, err := filepath.EvalSymlinks(storeDir); err == nil {
		storeDir = v
	}
	if v, err := filepath.EvalSymlinks(repoRoot); err == nil {
		repoRoot = v
	}

	rel, err := filepath.Rel(repoRoot, storeDir)
	if err != nil {
		return false, err
	}
	rel = filepath.Clean(rel)

	var targets []string
	for _, name := range slotFiles {
		if _, err := os.Stat(filepath.Join(storeDir, name)); err != nil {
			continue
		}
		if rel == "." {
			targets = append(targets, name)
		} else {
			targets = append(targets, filepath.Join(rel, name))
		}
	}
	if len(targets) == 0 {
		return false, nil
	}

	args := append([]string{"-C", repoRoot, "add", "--"}, targets...)
	if _, err := git(ctx, repoRoot, args...); err != nil {
		return false, err
	}
	return true, nil
}
