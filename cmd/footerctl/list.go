package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/footer-citations/internal/domain"
)

func newListCommand() *cobra.Command {
	var markup bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in citations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := domain.DefaultRegistry()

			if markup {
				for _, c := range registry.All() {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), c.Format()); err != nil {
						return err
					}
				}

				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Author", "Title", "Text"})
			for i, c := range registry.All() {
				t.AppendRow(table.Row{i, c.Author.Display(), c.Title, c.Text})
			}
			t.AppendFooter(table.Row{"", "", "Total", registry.Len()})
			t.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&markup, "markup", false, "print each citation's footer markup instead of a table")

	return cmd
}
