package cli

import (
	"strings"

	"notepress/internal/tree"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Filter the active section's pages by title and text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pages := tree.FilterPages(snap.ActivePages(), query)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"query": query,
				"pages": pages,
			}})
		},
	}
}
