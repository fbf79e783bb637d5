package cmd

import (
	"github.com/bariqpay/bariq-cli/routes"
	"github.com/spf13/cobra"
)

// whoamiCmd reports the current session, if any. Authentication requires
// both a stored credential and a user record.
func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.IsAuthenticated() {
				cmd.Println("Not logged in.")
				return nil
			}
			role := a.store.Role()
			if name := a.store.DisplayName(); name != "" {
				cmd.Printf("%s (%s)\n", name, role)
			} else {
				cmd.Printf("(%s)\n", role)
			}
			cmd.Println("Home:", routes.HomeFor(role))
			if js, _ := cmd.Flags().GetBool("json"); js {
				printJSON(cmd, a.store.User())
			}
			return nil
		},
	}
}
