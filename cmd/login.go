package cmd

import (
	"fmt"
	"time"

	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/bariqpay/bariq-cli/pkg/validation"
	"github.com/bariqpay/bariq-cli/routes"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const (
	nafathPollAttempts = 60
	nafathPollInterval = 2 * time.Second
)

// loginCmd creates the login command group with one subcommand per role.
// Each role has its own login surface; a rejected login surfaces the
// backend's message directly and never touches the stored session.
func loginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Bariq",
	}
	cmd.AddCommand(loginCustomerCmd(a), loginMerchantCmd(a), loginAdminCmd(a))
	return cmd
}

func loginCustomerCmd(a *app) *cobra.Command {
	var useNafath bool

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Log in as a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if useNafath {
				return nafathLogin(a, cmd)
			}
			username := promptForInput("Username: ")
			password := promptForPassword("Password: ")
			if err := validation.ValidateNonEmptyString("username", username); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}

			res, err := a.api.CustomerLogin(cmd.Context(), username, password)
			if e := ensureSuccess(res, err); e != nil {
				return e
			}
			printLoginGreeting(cmd, a)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useNafath, "nafath", false, "Authenticate through the Nafath app instead of a password")
	return cmd
}

func loginMerchantCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merchant",
		Short: "Log in as a merchant user",
		RunE: func(cmd *cobra.Command, args []string) error {
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")
			if email == "" || password == "" {
				return clierr.New(clierr.Validation, "email and password cannot be empty", nil)
			}

			res, err := a.api.MerchantLogin(cmd.Context(), email, password)
			if e := ensureSuccess(res, err); e != nil {
				return e
			}
			printLoginGreeting(cmd, a)
			return nil
		},
	}
}

func loginAdminCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Log in as an administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")
			if email == "" || password == "" {
				return clierr.New(clierr.Validation, "email and password cannot be empty", nil)
			}

			res, err := a.api.AdminLogin(cmd.Context(), email, password)
			if e := ensureSuccess(res, err); e != nil {
				return e
			}
			printLoginGreeting(cmd, a)
			return nil
		},
	}
}

// nafathLogin runs the two-step Nafath flow: initiate a verification
// session, then poll until the user approves in the Nafath app.
func nafathLogin(a *app, cmd *cobra.Command) error {
	nationalID := promptForInput("National ID: ")
	if err := validation.ValidateNationalID(nationalID); err != nil {
		return clierr.New(clierr.Validation, err.Error(), err)
	}

	res, err := a.api.NafathInitiate(cmd.Context(), nationalID)
	if e := ensureSuccess(res, err); e != nil {
		return e
	}
	var initData struct {
		SessionID string `json:"session_id"`
		Random    string `json:"random"`
	}
	if err := res.Decode(&initData); err != nil {
		return clierr.New(clierr.Internal, "unexpected Nafath response", err)
	}

	if initData.Random != "" {
		cmd.Printf("Open the Nafath app and approve request %s.\n", initData.Random)
	} else {
		cmd.Println("Open the Nafath app and approve the pending request.")
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Waiting for Nafath approval"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
	)
	defer func() { _ = bar.Finish() }()

	for attempt := 0; attempt < nafathPollAttempts; attempt++ {
		_ = bar.Add(1)
		verifyRes, verifyErr := a.api.NafathVerify(cmd.Context(), initData.SessionID, nationalID)
		if verifyErr == nil && verifyRes.Success {
			fmt.Fprintln(cmd.ErrOrStderr())
			printLoginGreeting(cmd, a)
			return nil
		}
		time.Sleep(nafathPollInterval)
	}
	return clierr.New(clierr.Auth, "Nafath verification was not approved in time", nil)
}

// printLoginGreeting reports who is logged in and their home surface.
func printLoginGreeting(cmd *cobra.Command, a *app) {
	role := a.store.Role()
	name := a.store.DisplayName()
	if name != "" {
		cmd.Printf("Logged in as %s (%s). Home: %s\n", name, role, routes.HomeFor(role))
	} else {
		cmd.Printf("Logged in (%s). Home: %s\n", role, routes.HomeFor(role))
	}
}
