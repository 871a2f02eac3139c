package cli

import (
	"strings"

	"notepress/internal/gitrepo"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Commit the store's slot files to the enclosing git repo",
		Long: strings.TrimSpace(`
Stage and commit the slot files (blog.json, blog.sqlite) when the store
directory lives inside a git repository. A no-op otherwise. Set
NOTEPRESS_AUTOCOMMIT=1 to run this automatically after every mutating
command.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx := cmd.Context()
			committed, err := gitrepo.CommitSlot(ctx, dir, message)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := gitrepo.GetStatus(ctx, dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"committed": committed,
				"status":    st,
			}})
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Commit message (default: timestamped)")
	return cmd
}
