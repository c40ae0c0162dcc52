package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/interfaces/cli/output"
)

func newBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ORDER_ID...",
		Short: "Compute the material balance of an order selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				report, err := session.Planner.Balance(parseIDs(args))
				if err != nil {
					return err
				}
				return sink.PresentBalance(report)
			})
		},
	}
}

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "schedule ORDER_ID...",
		Short: "Lay an order selection out on the production calendar",
		Long: `Orders are scheduled one after another by ascending priority with one
setup day between consecutive orders. Use --format svg for a Gantt chart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				startDate, err := opts.parseStart(start)
				if err != nil {
					return err
				}
				report, err := session.Planner.Schedule(parseIDs(args), startDate)
				if err != nil {
					return err
				}
				return sink.PresentSchedule(report)
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first production day, YYYY-MM-DD (default today)")
	return cmd
}

func newUtilizationCommand(opts *rootOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "utilization ORDER_ID...",
		Short: "Estimate machine load over the schedule of an order selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				startDate, err := opts.parseStart(start)
				if err != nil {
					return err
				}
				report, err := session.Planner.Utilization(parseIDs(args), startDate)
				if err != nil {
					return err
				}
				return sink.PresentUtilization(report)
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first production day, YYYY-MM-DD (default today)")
	return cmd
}

func newPlanCommand(opts *rootOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "plan ORDER_ID...",
		Short: "Compute balance, schedule and utilization of an order selection at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				startDate, err := opts.parseStart(start)
				if err != nil {
					return err
				}
				result, err := session.Planner.Plan(cmd.Context(), parseIDs(args), startDate)
				if err != nil {
					return err
				}
				return sink.PresentPlan(result)
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first production day, YYYY-MM-DD (default today)")
	return cmd
}
