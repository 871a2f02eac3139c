package cli

import (
	"strings"

	"notepress/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var notebookID string
	var pageID string
	var overwrite bool
	var includeTrashed bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export notebooks as markdown files",
		Long: strings.TrimSpace(`
Write the tree out as plain markdown: one file per page plus a section
index, under <to>/notebooks/<notebook-id>/<section-id>/. With --page a
single page is written to <to>/pages/ instead. Without --notebook or
--page the whole tree is exported.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.WriteOptions{
				IncludeTrashed: includeTrashed,
				Overwrite:      overwrite,
			}

			var res publish.WriteResult
			switch {
			case strings.TrimSpace(pageID) != "":
				res, err = publish.WritePage(snap, strings.TrimSpace(pageID), toDir, opt)
			case strings.TrimSpace(notebookID) != "":
				res, err = publish.WriteNotebook(snap, strings.TrimSpace(notebookID), toDir, opt)
			default:
				res, err = publish.WriteAll(snap, toDir, opt)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&notebookID, "notebook", "", "Export a single notebook")
	cmd.Flags().StringVar(&pageID, "page", "", "Export a single page")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files that already exist")
	cmd.Flags().BoolVar(&includeTrashed, "include-trashed", false, "Export trashed pages too")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
