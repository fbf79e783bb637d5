package cmd

import (
	"encoding/json"

	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/bariqpay/bariq-cli/pkg/validation"
	"github.com/spf13/cobra"
)

// merchantCmd groups the merchant-facing operations.
func merchantCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchant",
		Short: "Merchant operations",
	}
	cmd.AddCommand(
		merchantProfileCmd(a),
		merchantDashboardCmd(a),
		merchantBranchesCmd(a),
		merchantStaffCmd(a),
		merchantLookupCmd(a),
		merchantCheckCreditCmd(a),
		merchantTransactionsCmd(a),
		merchantNewTransactionCmd(a),
		merchantCancelCmd(a),
		merchantReturnCmd(a),
		merchantSettlementsCmd(a),
	)
	return cmd
}

func merchantProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the merchant profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.MerchantProfile(cmd.Context())
			return output(cmd, res, err)
		},
	}
}

func merchantDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the merchant summary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.MerchantDashboard(cmd.Context())
			return output(cmd, res, err)
		},
	}
}

func merchantBranchesCmd(a *app) *cobra.Command {
	var addJSON string

	cmd := &cobra.Command{
		Use:   "branches [id]",
		Short: "List branches, show one by id, or add one with --add",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addJSON != "" {
				data, err := decodeJSONFlag(addJSON)
				if err != nil {
					return err
				}
				res, rerr := a.api.CreateBranch(cmd.Context(), data)
				return output(cmd, res, rerr)
			}
			if len(args) == 1 {
				res, err := a.api.MerchantBranch(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.MerchantBranches(cmd.Context())
			return outputList(cmd, res, err, "branches",
				[]string{"id", "name", "city", "is_active"})
		},
	}

	cmd.Flags().StringVar(&addJSON, "add", "", "Branch fields as a JSON object")
	return cmd
}

func merchantStaffCmd(a *app) *cobra.Command {
	var addJSON, remove string
	var page int

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "List staff, add with --add, or remove with --remove",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addJSON != "" {
				data, err := decodeJSONFlag(addJSON)
				if err != nil {
					return err
				}
				res, rerr := a.api.CreateStaff(cmd.Context(), data)
				return output(cmd, res, rerr)
			}
			if remove != "" {
				res, err := a.api.DeleteStaff(cmd.Context(), remove)
				return output(cmd, res, err)
			}
			res, err := a.api.MerchantStaff(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "staff",
				[]string{"id", "full_name", "email", "role", "branch_id"})
		},
	}

	cmd.Flags().StringVar(&addJSON, "add", "", "Staff fields as a JSON object")
	cmd.Flags().StringVar(&remove, "remove", "", "Staff id to remove")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func merchantLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <bariq-id>",
		Short: "Look up a customer by Bariq ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.LookupCustomer(cmd.Context(), args[0])
			return output(cmd, res, err)
		},
	}
}

func merchantCheckCreditCmd(a *app) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "check-credit <bariq-id>",
		Short: "Check whether a customer can cover an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateAmount(amount); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			res, err := a.api.CheckCustomerCredit(cmd.Context(), args[0], amount)
			return output(cmd, res, err)
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Purchase amount")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func merchantTransactionsCmd(a *app) *cobra.Command {
	var status string
	var page int

	cmd := &cobra.Command{
		Use:   "transactions [id]",
		Short: "List transactions, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				res, err := a.api.MerchantTransaction(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.MerchantTransactions(cmd.Context(), listParams(page, status))
			return outputList(cmd, res, err, "transactions",
				[]string{"id", "customer_name", "amount", "status", "created_at"})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func merchantNewTransactionCmd(a *app) *cobra.Command {
	var dataJSON string

	cmd := &cobra.Command{
		Use:   "new-transaction",
		Short: "Create a deferred-payment transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeJSONFlag(dataJSON)
			if err != nil {
				return err
			}
			res, rerr := a.api.CreateTransaction(cmd.Context(), data)
			return output(cmd, res, rerr)
		},
	}

	cmd.Flags().StringVar(&dataJSON, "data", "", "Transaction fields as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func merchantCancelCmd(a *app) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <transaction-id>",
		Short: "Cancel a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.CancelTransaction(cmd.Context(), args[0], reason)
			return output(cmd, res, err)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")
	return cmd
}

func merchantReturnCmd(a *app) *cobra.Command {
	var dataJSON string

	cmd := &cobra.Command{
		Use:   "return <transaction-id>",
		Short: "Process a product return against a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeJSONFlag(dataJSON)
			if err != nil {
				return err
			}
			res, rerr := a.api.ProcessReturn(cmd.Context(), args[0], data)
			return output(cmd, res, rerr)
		},
	}

	cmd.Flags().StringVar(&dataJSON, "data", "", "Return fields as a JSON object")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func merchantSettlementsCmd(a *app) *cobra.Command {
	var page int
	var stats bool

	cmd := &cobra.Command{
		Use:   "settlements [id]",
		Short: "List settlements, show one by id, or aggregate stats with --stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stats {
				res, err := a.api.MerchantSettlementStats(cmd.Context())
				return output(cmd, res, err)
			}
			if len(args) == 1 {
				res, err := a.api.MerchantSettlement(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.MerchantSettlements(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "settlements",
				[]string{"id", "amount", "status", "period_start", "period_end"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show aggregate settlement statistics")
	return cmd
}

// decodeJSONFlag parses a --data style flag value into a generic object.
func decodeJSONFlag(raw string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, clierr.New(clierr.Validation, "invalid JSON object: "+err.Error(), err)
	}
	return data, nil
}
