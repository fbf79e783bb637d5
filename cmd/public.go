package cmd

import "github.com/spf13/cobra"

// publicCmd groups the unauthenticated reference-data lookups.
func publicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public",
		Short: "Public reference data",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "cities",
			Short: "List supported cities",
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.api.Cities(cmd.Context())
				return output(cmd, res, err)
			},
		},
		&cobra.Command{
			Use:   "business-types",
			Short: "List merchant business types",
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.api.BusinessTypes(cmd.Context())
				return output(cmd, res, err)
			},
		},
		&cobra.Command{
			Use:   "return-reasons",
			Short: "List accepted return reasons",
			RunE: func(cmd *cobra.Command, args []string) error {
				res, err := a.api.ReturnReasons(cmd.Context())
				return output(cmd, res, err)
			},
		},
	)
	return cmd
}
