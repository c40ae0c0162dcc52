package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/application/services/purchasing"
	"github.com/vsinha/prodplan/pkg/interfaces/cli/output"
)

func newPurchaseOrderCommand(opts *rootOptions) *cobra.Command {
	var saveDir string

	cmd := &cobra.Command{
		Use:     "purchase-order ORDER_ID...",
		Short:   "Raise a priced purchase request for the shortfalls of an order selection",
		Aliases: []string{"po"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(sink output.Sink, session *Session) error {
				now := opts.now()
				po, err := session.Planner.PurchaseOrder(parseIDs(args), now)
				if err != nil {
					return err
				}
				if err := sink.PresentPurchaseOrder(po); err != nil {
					return err
				}

				if saveDir == "" || !po.Required() {
					return nil
				}
				if err := os.MkdirAll(saveDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				path := filepath.Join(saveDir, purchasing.FileName(now))
				if err := os.WriteFile(path, []byte(purchasing.Text(po)), 0644); err != nil {
					return fmt.Errorf("failed to save purchase order: %w", err)
				}
				opts.log.Info("purchase order saved", "path", path, "id", po.ID)
				fmt.Fprintf(cmd.ErrOrStderr(), "Purchase order saved to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&saveDir, "save", "", "also save the plain-text request into this directory")
	return cmd
}
