package cmd

import (
	"github.com/bariqpay/bariq-cli/pkg/clierr"
	"github.com/bariqpay/bariq-cli/pkg/validation"
	"github.com/spf13/cobra"
)

// adminCmd groups the back-office operations.
func adminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations",
	}
	cmd.AddCommand(
		adminDashboardCmd(a),
		adminCustomersCmd(a),
		adminCreditRequestsCmd(a),
		adminMerchantsCmd(a),
		adminTransactionsCmd(a),
		adminSettlementsCmd(a),
		adminStaffCmd(a),
		adminReportsCmd(a),
		adminAuditLogsCmd(a),
		adminSettingsCmd(a),
	)
	return cmd
}

func adminDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the platform dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.AdminDashboard(cmd.Context())
			return output(cmd, res, err)
		},
	}
}

func adminCustomersCmd(a *app) *cobra.Command {
	var page int
	var creditLimit float64

	cmd := &cobra.Command{
		Use:   "customers [id]",
		Short: "List customers, show one, or set a credit limit with --credit-limit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creditLimit > 0 {
				if len(args) != 1 {
					return clierr.New(clierr.Validation, "customer id required to set a credit limit", nil)
				}
				if err := validation.ValidateAmount(creditLimit); err != nil {
					return clierr.New(clierr.Validation, err.Error(), err)
				}
				res, err := a.api.AdminUpdateCustomerCredit(cmd.Context(), args[0], creditLimit)
				return output(cmd, res, err)
			}
			if len(args) == 1 {
				res, err := a.api.AdminCustomer(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.AdminCustomers(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "customers",
				[]string{"id", "full_name", "bariq_id", "credit_limit", "status"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().Float64Var(&creditLimit, "credit-limit", 0, "New credit limit for the customer")
	return cmd
}

func adminCreditRequestsCmd(a *app) *cobra.Command {
	var page int
	var approve, reject, reason string

	cmd := &cobra.Command{
		Use:   "credit-requests",
		Short: "List credit requests, approve with --approve, reject with --reject",
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve != "" {
				res, err := a.api.AdminApproveCreditRequest(cmd.Context(), approve, nil)
				return output(cmd, res, err)
			}
			if reject != "" {
				res, err := a.api.AdminRejectCreditRequest(cmd.Context(), reject, reason)
				return output(cmd, res, err)
			}
			res, err := a.api.AdminCreditRequests(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "requests",
				[]string{"id", "customer_id", "requested_amount", "status", "created_at"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&approve, "approve", "", "Request id to approve")
	cmd.Flags().StringVar(&reject, "reject", "", "Request id to reject")
	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason")
	return cmd
}

func adminMerchantsCmd(a *app) *cobra.Command {
	var page int
	var approve, suspend, reason string

	cmd := &cobra.Command{
		Use:   "merchants [id]",
		Short: "List merchants, show one, approve with --approve, suspend with --suspend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve != "" {
				res, err := a.api.AdminApproveMerchant(cmd.Context(), approve)
				return output(cmd, res, err)
			}
			if suspend != "" {
				res, err := a.api.AdminSuspendMerchant(cmd.Context(), suspend, reason)
				return output(cmd, res, err)
			}
			if len(args) == 1 {
				res, err := a.api.AdminMerchant(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.AdminMerchants(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "merchants",
				[]string{"id", "business_name", "city", "status", "created_at"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&approve, "approve", "", "Merchant id to approve")
	cmd.Flags().StringVar(&suspend, "suspend", "", "Merchant id to suspend")
	cmd.Flags().StringVar(&reason, "reason", "", "Suspension reason")
	return cmd
}

func adminTransactionsCmd(a *app) *cobra.Command {
	var page int
	var status string
	var overdue bool

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions across the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			if overdue {
				res, err := a.api.AdminOverdueTransactions(cmd.Context())
				return outputList(cmd, res, err, "transactions",
					[]string{"id", "customer_id", "merchant_id", "amount", "due_date"})
			}
			res, err := a.api.AdminTransactions(cmd.Context(), listParams(page, status))
			return outputList(cmd, res, err, "transactions",
				[]string{"id", "customer_id", "merchant_id", "amount", "status"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Show only overdue transactions")
	return cmd
}

func adminSettlementsCmd(a *app) *cobra.Command {
	var page int
	var approve, transfer string

	cmd := &cobra.Command{
		Use:   "settlements [id]",
		Short: "List settlements, show one, approve with --approve, transfer with --transfer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve != "" {
				res, err := a.api.AdminApproveSettlement(cmd.Context(), approve)
				return output(cmd, res, err)
			}
			if transfer != "" {
				res, err := a.api.AdminTransferSettlement(cmd.Context(), transfer, nil)
				return output(cmd, res, err)
			}
			if len(args) == 1 {
				res, err := a.api.AdminSettlement(cmd.Context(), args[0])
				return output(cmd, res, err)
			}
			res, err := a.api.AdminSettlements(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "settlements",
				[]string{"id", "merchant_id", "amount", "status", "period_end"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&approve, "approve", "", "Settlement id to approve")
	cmd.Flags().StringVar(&transfer, "transfer", "", "Settlement id to mark transferred")
	return cmd
}

func adminStaffCmd(a *app) *cobra.Command {
	var addJSON string

	cmd := &cobra.Command{
		Use:   "staff",
		Short: "List back-office staff, or add with --add",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addJSON != "" {
				data, err := decodeJSONFlag(addJSON)
				if err != nil {
					return err
				}
				res, rerr := a.api.AdminCreateStaff(cmd.Context(), data)
				return output(cmd, res, rerr)
			}
			res, err := a.api.AdminStaff(cmd.Context())
			return outputList(cmd, res, err, "staff",
				[]string{"id", "full_name", "email", "role", "is_active"})
		},
	}

	cmd.Flags().StringVar(&addJSON, "add", "", "Staff fields as a JSON object")
	return cmd
}

func adminReportsCmd(a *app) *cobra.Command {
	var financial bool

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show the overview report, or the financial report with --financial",
		RunE: func(cmd *cobra.Command, args []string) error {
			if financial {
				res, err := a.api.AdminReportsFinancial(cmd.Context(), nil)
				return output(cmd, res, err)
			}
			res, err := a.api.AdminReportsOverview(cmd.Context())
			return output(cmd, res, err)
		},
	}

	cmd.Flags().BoolVar(&financial, "financial", false, "Show the financial report")
	return cmd
}

func adminAuditLogsCmd(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "audit-logs",
		Short: "List audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.api.AdminAuditLogs(cmd.Context(), listParams(page, ""))
			return outputList(cmd, res, err, "logs",
				[]string{"id", "actor", "action", "target", "created_at"})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func adminSettingsCmd(a *app) *cobra.Command {
	var setKey, setValue string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show system settings, or update one with --set and --value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if setKey != "" {
				res, err := a.api.AdminUpdateSetting(cmd.Context(), setKey, setValue)
				return output(cmd, res, err)
			}
			res, err := a.api.AdminSettings(cmd.Context())
			return output(cmd, res, err)
		},
	}

	cmd.Flags().StringVar(&setKey, "set", "", "Setting key to update")
	cmd.Flags().StringVar(&setValue, "value", "", "New value for the setting")
	return cmd
}
