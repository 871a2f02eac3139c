package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"notepress/internal/format"
	"notepress/internal/gitrepo"
	"notepress/internal/store"
	"notepress/internal/tree"
	"notepress/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	ReadOnly   bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "notepress",
		Short:        "Notebook-style blog authoring CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive browser
  notepress

  # Scriptable commands
  notepress pages list

  # Serve the public site + admin surface
  notepress web --addr 127.0.0.1:3456
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("NOTEPRESS_DIR", ""), "Path to store dir (default: discovered .notepress ancestor, else ~/.notepress)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NOTEPRESS_FORMAT", "json"), "Output format (json)")
	cmd.PersistentFlags().BoolVar(&app.ReadOnly, "read-only", false, "Disable authoring operations")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newNotebooksCmd(app))
	cmd.AddCommand(newSectionsCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newSyncCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return err
	}
	return tui.Run(dir)
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return strings.TrimSpace(app.Dir), nil
	}
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = dir
	return dir, nil
}

func loadSnapshot(app *App) (*tree.Snapshot, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	return s.Load(), s, nil
}

// isAdmin gates authoring: a read-only invocation makes every mutation a
// silent no-op, same as the web and store layers.
func isAdmin(app *App) bool {
	return !app.ReadOnly
}

// saveIfChanged mirrors a mutated snapshot to the slot. Unlike the long-lived
// surfaces, a one-shot command has no in-memory session to fall back to, so
// the error is surfaced.
func saveIfChanged(s store.Store, prev, next *tree.Snapshot) (bool, error) {
	if next == prev {
		return false, nil
	}
	if err := s.Save(next); err != nil {
		return true, err
	}
	if gitrepo.AutoCommitEnabled() {
		// Best-effort: the save already succeeded.
		_, _ = gitrepo.CommitSlot(context.Background(), s.Dir, "")
	}
	return true, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
