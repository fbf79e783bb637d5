package cmd

import (
	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/bariqpay/bariq-cli/routes"
	"github.com/spf13/cobra"
)

// logoutCmd ends the backend session (best effort) and clears the local
// one. All stored fields go together; a half-cleared session is never
// left behind.
func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.store.IsAuthenticated() {
				cmd.Println("Not logged in.")
				return nil
			}
			role, err := a.api.Logout(cmd.Context())
			if err != nil {
				return clierr.New(clierr.Internal, "failed to clear session", err)
			}
			cmd.Printf("Logged out. Log back in at %s\n", routes.LoginFor(role))
			return nil
		},
	}
}
