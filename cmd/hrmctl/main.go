package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	a := &app{}
	defer a.Close()

	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		a.Close()
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hrmctl",
		Short: "Operate a PeopleHub deployment",
		Long: `hrmctl runs maintenance tasks against the PeopleHub database
using the same configuration as the API server (.env.cli, then .env).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.Init(cmd.Context())
		},
	}

	root.AddCommand(newMigrateCommand(a))
	root.AddCommand(newUserCommand(a))
	root.AddCommand(newTokenCommand(a))
	return root
}
