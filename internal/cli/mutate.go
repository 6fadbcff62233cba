package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// recordFlags are the editable fields shared by add and update.
type recordFlags struct {
	title       string
	description string
	category    string
	date        string
}

func (r *recordFlags) register(f *pflag.FlagSet) {
	f.StringVar(&r.title, "title", "", "achievement title")
	f.StringVar(&r.description, "description", "", "what was achieved")
	f.StringVar(&r.category, "category", "", "category: Personal, Career, or Education")
	f.StringVar(&r.date, "date", "", "date achieved (YYYY-MM-DD)")
}

// apply overlays the flags that were set onto in.
func (r *recordFlags) apply(f *pflag.FlagSet, in types.AchievementInput) (types.AchievementInput, error) {
	if f.Changed("title") {
		in.Title = strings.TrimSpace(r.title)
	}
	if f.Changed("description") {
		in.Description = strings.TrimSpace(r.description)
	}
	if f.Changed("category") {
		in.Category = types.Category(strings.TrimSpace(r.category))
	}
	if f.Changed("date") {
		d, err := types.ParseDate(strings.TrimSpace(r.date))
		if err != nil {
			return in, types.NewValidationError("date", "Date must be YYYY-MM-DD")
		}
		in.Date = d
	}
	return in, nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

func newAddCmd(a *app) *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new achievement",
		Example: `  achievements add --title "Shipped v1" --description "First release" \
    --category Career --date 2026-01-05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := rf.apply(cmd.Flags(), types.AchievementInput{})
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.facade.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printRecord(cmd.OutOrStdout(), rec)
		},
	}
	rf.register(cmd.Flags())
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing achievement",
		Long:  "Update replaces the fields given as flags and keeps the rest.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := s.facade.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			in, err := rf.apply(cmd.Flags(), current.Input())
			if err != nil {
				return err
			}
			rec, err := s.facade.Update(cmd.Context(), in.WithID(id))
			if err != nil {
				return err
			}
			return a.printRecord(cmd.OutOrStdout(), rec)
		},
	}
	rf.register(cmd.Flags())
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an achievement",
		Long:  "Delete removes the achievement with the given id. Deleting an id that\ndoes not exist succeeds and changes nothing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.facade.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted achievement %d\n", res.ID)
			return err
		},
	}
}
