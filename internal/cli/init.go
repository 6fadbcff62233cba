package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize achievements storage",
		Long:  "Create the configuration and data directories, write a default config.yaml,\nand seed the store with the sample achievements on first run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Achievements initialized (backend %s, %s)\ndata: %s\n",
				a.settings.Backend, s.store.Policy(), a.settings.DataDir)
			return nil
		},
	}
}
