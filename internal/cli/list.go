package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/achievements/internal/filter"
)

func newListCmd(a *app) *cobra.Command {
	var form filter.FormValues
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List achievements with optional filters",
		Long: `List prints achievements in stored order. Filters are ANDed together;
dates are inclusive and use YYYY-MM-DD.

Example:
  achievements list
  achievements list --q protocol
  achievements list --category Career --start 2019-01-01 --end 2020-12-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := filter.NewManager(nil)
			if err != nil {
				return err
			}
			m.Edit(form)
			state, err := m.Submit()
			if err != nil {
				return err
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			recs, err := s.facade.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			matched := filter.Apply(recs, state)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), matched)
			}
			return printTable(cmd.OutOrStdout(), matched)
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.TitleQuery, "q", "", "title contains (case-insensitive)")
	f.StringVar(&form.Category, "category", "", "category: Personal, Career, or Education")
	f.StringVar(&form.StartDate, "start", "", "earliest date, inclusive")
	f.StringVar(&form.EndDate, "end", "", "latest date, inclusive")
	return cmd
}
