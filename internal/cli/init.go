package cli

import (
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (seeds the default tree)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":       app.Dir,
					"notebooks": len(snap.Notebooks),
				},
			})
		},
	}
	return cmd
}
