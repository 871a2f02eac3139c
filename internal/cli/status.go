package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store location and tree counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			sections, pages, trashed := 0, 0, 0
			for _, secs := range snap.Sections {
				sections += len(secs)
			}
			for _, ps := range snap.Pages {
				for _, p := range ps {
					if p.Trashed {
						trashed++
					} else {
						pages++
					}
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":       app.Dir,
					"notebooks": len(snap.Notebooks),
					"sections":  sections,
					"pages":     pages,
					"trashed":   trashed,
					"selection": snap.UI,
				},
			})
		},
	}
	return cmd
}
