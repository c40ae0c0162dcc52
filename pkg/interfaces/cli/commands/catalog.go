package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/interfaces/cli/output"
)

func newOrdersCommand(opts *rootOptions) *cobra.Command {
	var customer, search string

	cmd := &cobra.Command{
		Use:     "orders",
		Short:   "List catalog orders, optionally filtered by customer and search text",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				orders, err := session.Planner.Catalog().FilterOrders(customer, search)
				if err != nil {
					return err
				}
				return sink.PresentOrders(orders)
			})
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "only orders of this customer")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search over id, customer, product type and status")
	return cmd
}

func newCustomersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "customers",
		Short: "List the customers of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				customers, err := session.Planner.Catalog().Customers()
				if err != nil {
					return err
				}
				return sink.PresentCustomers(customers)
			})
		},
	}
}

func newStockCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stock",
		Short: "Show warehouse stock, reservations and availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				lines, err := session.Planner.Reservations().StockOverview()
				if err != nil {
					return err
				}
				return sink.PresentStock(lines)
			})
		},
	}
}
