package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNotebooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Notebook commands",
	}
	cmd.AddCommand(newNotebooksListCmd(app))
	cmd.AddCommand(newNotebooksCreateCmd(app))
	cmd.AddCommand(newNotebooksRenameCmd(app))
	cmd.AddCommand(newNotebooksUseCmd(app))
	return cmd
}

func newNotebooksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notebooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": snap.Notebooks})
		},
	}
}

func newNotebooksCreateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notebook and switch to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.CreateNotebook(isAdmin(app), title)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"changed": changed}
			if changed {
				nb, _ := next.FindNotebook(next.UI.ActiveNotebookID)
				out["notebook"] = nb
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Notebook title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotebooksRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <notebook-id>",
		Short: "Rename a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := snap.FindNotebook(id); !ok {
				return writeErr(cmd, errNotFound("notebook", id))
			}
			next := snap.RenameNotebook(isAdmin(app), id, title)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			nb, _ := next.FindNotebook(id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "notebook": nb}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotebooksUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <notebook-id>",
		Short: "Make a notebook the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := snap.FindNotebook(id); !ok {
				return writeErr(cmd, errNotFound("notebook", id))
			}
			next := snap.SetActiveNotebook(id)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "selection": next.UI}})
		},
	}
}
