package cmd

import (
	"context"
	"os"

	"github.com/bariqpay/bariq-cli/auth"
	"github.com/bariqpay/bariq-cli/client"
	"github.com/bariqpay/bariq-cli/db"
	"github.com/bariqpay/bariq-cli/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app bundles the wired dependencies every command works against: the
// persistent credential store and the authenticated API client.
type app struct {
	api   *client.Client
	store *session.Store
	conn  *gorm.DB
}

func Execute() {
	a, err := initApp()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer closeApp(a)

	rootCmd := createRootCmd(a)
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")
	rootCmd.PersistentFlags().Bool("json", false, "Print raw JSON instead of tables")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		rootCmd.PrintErrln("Error:", err.Error())
		os.Exit(1)
	}
}

func createRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bariq",
		Short:         "A command-line client for the Bariq deferred-payment service",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		customerCmd(a),
		merchantCmd(a),
		adminCmd(a),
		publicCmd(a),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

// initApp opens the local state database, restores any persisted
// session, and wires the store, client, and refresh service together.
func initApp() (*app, error) {
	conn, err := db.Open(db.DefaultPath)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(db.NewCredentialRepository(conn))
	if err := store.Init(context.Background()); err != nil {
		return nil, err
	}

	api := client.New(os.Getenv("BARIQ_API_URL"), store, terminalNavigator{})
	api.SetRefresher(auth.NewService(store, api))

	return &app{api: api, store: store, conn: conn}, nil
}

func closeApp(a *app) {
	if err := db.Close(a.conn); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}
