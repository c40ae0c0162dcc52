package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/interfaces/cli/output"
)

func newReserveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "reserve ORDER_ID...",
		Short:   "Reserve the materials of an order selection and show the resulting stock",
		Aliases: []string{"commit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				return presentLedgerChange(sink, session, session.Planner.Reservations().Commit, parseIDs(args))
			})
		},
	}
}

func newReleaseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "release ORDER_ID...",
		Short: "Release the reserved materials of an order selection and show the resulting stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				return presentLedgerChange(sink, session, session.Planner.Reservations().Release, parseIDs(args))
			})
		},
	}
}

func presentLedgerChange(
	sink output.Sink,
	session *Session,
	apply func([]entities.OrderID) (*dto.ReservationResult, error),
	ids []entities.OrderID,
) error {
	result, err := apply(ids)
	if err != nil {
		return err
	}
	if err := sink.PresentReservation(result); err != nil {
		return err
	}

	lines, err := session.Planner.Reservations().StockOverview()
	if err != nil {
		return err
	}
	return sink.PresentStock(lines)
}
