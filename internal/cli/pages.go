package cli

import (
	"bufio"
	"fmt"
	"strings"

	"notepress/internal/richtext"
	"notepress/internal/tree"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Page commands (scoped to the active section)",
	}
	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesCreateCmd(app))
	cmd.AddCommand(newPagesShowCmd(app))
	cmd.AddCommand(newPagesEditCmd(app))
	cmd.AddCommand(newPagesStarCmd(app))
	cmd.AddCommand(newPagesTrashCmd(app))
	cmd.AddCommand(newPagesMoveCmd(app))
	cmd.AddCommand(newPagesUseCmd(app))
	return cmd
}

func newPagesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List non-trashed pages of the active section",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": snap.ActivePages()})
		},
	}
}

func newPagesCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create an untitled page at the front of the active section",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.CreatePage(isAdmin(app))
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"changed": changed}
			if changed {
				p, _ := next.ActivePage()
				out["page"] = p
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newPagesShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a page (body rendered as markdown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, secID, ok := snap.FindPage(id)
			if !ok {
				return writeErr(cmd, errNotFound("page", id))
			}
			out := map[string]any{
				"page":      p,
				"sectionId": secID,
			}
			if raw {
				out["content"] = richtext.Parse(p.Content).JSON()
			} else {
				out["markdown"] = richtext.Markdown(richtext.Parse(p.Content))
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Show the stored document instead of markdown")
	return cmd
}

func newPagesEditCmd(app *App) *cobra.Command {
	var title string
	var content string

	cmd := &cobra.Command{
		Use:   "edit <page-id>",
		Short: "Update a page's title and/or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, ok := snap.FindPage(id); !ok {
				return writeErr(cmd, errNotFound("page", id))
			}

			var upd tree.PageUpdate
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("content") {
				normalized := richtext.Parse(content).JSON()
				upd.Content = &normalized
			}
			next := snap.UpdatePageContent(isAdmin(app), id, upd)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, _, _ := next.FindPage(id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "page": p}})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New document (JSON; malformed input becomes the empty document)")
	return cmd
}

func newPagesStarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "star <page-id>",
		Short: "Toggle a page's star",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, ok := snap.FindPage(id); !ok {
				return writeErr(cmd, errNotFound("page", id))
			}
			next := snap.ToggleStarPage(isAdmin(app), id)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, _, _ := next.FindPage(id)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "page": p}})
		},
	}
}

func newPagesTrashCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "trash <page-id>",
		Short: "Move a page to trash (soft delete, asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, ok := snap.FindPage(id); !ok {
				return writeErr(cmd, errNotFound("page", id))
			}

			confirm := func(prompt string) bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return false
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				return answer == "y" || answer == "yes"
			}

			next := snap.TrashPage(isAdmin(app), id, confirm)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed}})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newPagesMoveCmd(app *App) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "move <page-id>",
		Short: "Move a page to another page's position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.MovePage(isAdmin(app), id, strings.TrimSpace(target))
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "pages": next.ActivePages()}})
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Page id to take the position of")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newPagesUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <page-id>",
		Short: "Make a page of the active section the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := snap.SetActivePage(id)
			changed, err := saveIfChanged(s, snap, next)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": changed, "selection": next.UI}})
		},
	}
}
