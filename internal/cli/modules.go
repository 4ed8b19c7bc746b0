package cli

import (
	"io"

	"github.com/2beens/athletepro/internal/modules"

	"github.com/spf13/cobra"
)

func newModulesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Browse the app modules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the registered modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []modules.Module
			for _, id := range opts.modules.IDs() {
				list = append(list, opts.modules.Resolve(id))
			}
			return opts.render(cmd, list, func(w io.Writer) {
				for _, m := range list {
					opts.printf(w, "%-16s %s\n", m.ID, m.Title)
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a module and its actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := opts.modules.Resolve(args[0])
			return opts.render(cmd, m, func(w io.Writer) {
				opts.printf(w, "%s\n%s\n", m.Title, m.Subtitle)
				for _, a := range m.Actions {
					opts.printf(w, "  %-18s athletepro %s\n", a.Label, a.Command)
				}
				for _, s := range m.Series {
					opts.printf(w, "  %-18s %d records\n", s, len(opts.app.Series(s)))
				}
			})
		},
	})

	return cmd
}
