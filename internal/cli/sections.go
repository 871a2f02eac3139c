package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Section commands (scoped to the active notebook)",
	}
	cmd.AddCommand(newSectionsListCmd(app))
	cmd.AddCommand(newSectionsCreateCmd(app))
	cmd.AddCommand(newSectionsRenameCmd(app))
	cmd.AddCommand(newSectionsMoveCmd(app))
	cmd.AddCommand(newSectionsUseCmd(app))
	return cmd
}

func newSectionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sections of the active notebook",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": snap.ActiveSections()})
		},
	}
}

func newSectionsCreateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a section in the active notebook and select it",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.CreateSection(isAdmin(app), title)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"changed": changed}
			if changed {
				sec, _, _ := next.FindSection(next.UI.ActiveSectionID)
				out["section"] = sec
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Section title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newSectionsRenameCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <section-id>",
		Short: "Rename a section of the active notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, ok := snap.FindSection(id); !ok {
				return writeErr(cmd, errNotFound("section", id))
			}
			next := snap.RenameSection(isAdmin(app), id, title)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			sec, _, _ := next.FindSection(id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "section": sec}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newSectionsMoveCmd(app *App) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "move <section-id>",
		Short: "Move a section to another section's position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.MoveSection(isAdmin(app), id, strings.TrimSpace(target))
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "sections": next.ActiveSections()}})
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Section id to take the position of")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newSectionsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <section-id>",
		Short: "Make a section of the active notebook the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, ok := snap.FindSection(id); !ok {
				return writeErr(cmd, errNotFound("section", id))
			}
			next := snap.SetActiveSection(id)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "selection": next.UI}})
		},
	}
}
