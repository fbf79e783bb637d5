package cmd

import (
	"net/url"
	"strconv"

	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/bariqpay/bariq-cli/pkg/validation"
	"github.com/spf13/cobra"
)

// customerCmd groups the customer-facing operations.
func customerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer account operations",
	}
	cmd.AddCommand(
		customerProfileCmd(a),
		customerCreditCmd(a),
		customerDebtCmd(a),
		customerTransactionsCmd(a),
		customerConfirmCmd(a),
		customerPaymentsCmd(a),
		customerPayCmd(a),
		customerNotificationsCmd(a),
	)
	return cmd
}

func customerProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.CustomerProfile(cmd.Context())
			return output(cmd, res, err)
		},
	}
}

func customerCreditCmd(a *app) *cobra.Command {
	var requestAmount float64
	var requestReason string

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Show credit details, or request a limit increase with --request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestAmount > 0 {
				if err := validation.ValidateAmount(requestAmount); err != nil {
					return clierr.New(clierr.Validation, err.Error(), err)
				}
				res, err := a.api.RequestCreditIncrease(cmd.Context(), requestAmount, requestReason)
				return output(cmd, res, err)
			}
			res, err := a.api.CustomerCredit(cmd.Context())
			return output(cmd, res, err)
		},
	}

	cmd.Flags().Float64Var(&requestAmount, "request", 0, "Requested new credit limit")
	cmd.Flags().StringVar(&requestReason, "reason", "", "Reason for the increase request")
	return cmd
}

func customerDebtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debt",
		Short: "Show outstanding debt",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.CustomerDebt(cmd.Context())
			return output(cmd, res, err)
		},
	}
}

func customerTransactionsCmd(a *app) *cobra.Command {
	var status string
	var page int

	cmd := &cobra.Command{
		Use:   "transactions [id]",
		Short: "List your transactions, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				res, err := a.api.CustomerTransaction(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.CustomerTransactions(cmd.Context(), listParams(page, status))
			return outputList(cmd, res, err, "transactions",
				[]string{"id", "merchant_name", "amount", "status", "due_date"})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (e.g. pending, active, paid)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func customerConfirmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <transaction-id>",
		Short: "Confirm a pending transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.ConfirmTransaction(cmd.Context(), args[0])
			return output(cmd, res, err)
		},
	}
}

func customerPaymentsCmd(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List your payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.CustomerPayments(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "payments",
				[]string{"id", "transaction_id", "amount", "payment_method", "created_at"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func customerPayCmd(a *app) *cobra.Command {
	var amount float64
	var method string

	cmd := &cobra.Command{
		Use:   "pay <transaction-id>",
		Short: "Make a payment against a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateAmount(amount); err != nil {
				return clierr.New(clierr.Validation, err.Error(), err)
			}
			res, err := a.api.MakePayment(cmd.Context(), args[0], amount, method)
			return output(cmd, res, err)
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Payment amount")
	cmd.Flags().StringVar(&method, "method", "card", "Payment method")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func customerNotificationsCmd(a *app) *cobra.Command {
	var page int
	var markRead string

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications, or mark one read with --read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if markRead != "" {
				res, err := a.api.MarkNotificationRead(cmd.Context(), markRead)
				return output(cmd, res, err)
			}
			res, err := a.api.CustomerNotifications(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "notifications",
				[]string{"id", "title", "message", "read", "created_at"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&markRead, "read", "", "Notification id to mark as read")
	return cmd
}

// listParams builds the shared pagination/filter query values.
func listParams(page int, status string) url.Values {
	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if status != "" {
		params.Set("status", status)
	}
	return params
}
