package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vsinha/prodplan/pkg/application/services/scheduling"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/infrastructure/config"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
	"github.com/vsinha/prodplan/pkg/interfaces/cli/output"
)

// rootOptions holds the global flags and what PersistentPreRunE derives from them
type rootOptions struct {
	configFile  string
	catalogPath string
	format      string
	output      string
	noColor     bool
	verbose     bool

	cfg config.Config
	log *logger.Logger
	now func() time.Time
}

// presentedError marks an error the sink has already shown to the user
type presentedError struct {
	err error
}

func (e *presentedError) Error() string { return e.err.Error() }

func (e *presentedError) Unwrap() error { return e.err }

// NewRootCommand builds the planner command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Material requirements and production scheduling for order selections",
		Long: `planner loads an order catalog (.xlsx or .yaml), computes the material
balance of a selection of orders, reserves stock for committed orders, lays
orders out on the production calendar and raises purchase requests.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				opts.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to config file (planner.yaml)")
	flags.StringVar(&opts.catalogPath, "catalog", "", "path to the order catalog (.xlsx, .yaml or a CSV directory); overrides catalog.path")
	flags.StringVarP(&opts.format, "format", "f", output.FormatText, "output format: text, json, yaml, xlsx, svg")
	flags.StringVarP(&opts.output, "output", "o", "", "write output to this file instead of stdout")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable ANSI color output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		newOrdersCommand(opts),
		newCustomersCommand(opts),
		newStockCommand(opts),
		newBalanceCommand(opts),
		newReserveCommand(opts),
		newReleaseCommand(opts),
		newScheduleCommand(opts),
		newUtilizationCommand(opts),
		newPlanCommand(opts),
		newPurchaseOrderCommand(opts),
		newServeCommand(opts),
	)
	return root
}

// Execute runs the command tree and returns the process exit code
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		var presented *presentedError
		if !errors.As(err, &presented) {
			color.New(color.FgHiRed).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (o *rootOptions) load(cmd *cobra.Command, args []string) error {
	if o.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	o.cfg = cfg

	mode := cfg.App.LogMode
	if o.verbose {
		mode = "dev"
	}
	o.log, err = logger.New(mode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

// run opens a session and hands the command's result to the configured sink.
// Failures are presented through the same sink.
func (o *rootOptions) run(cmd *cobra.Command, fn func(sink output.Sink, session *Session) error) error {
	sink, err := output.New(output.Config{
		Format:  o.format,
		Output:  o.output,
		Writer:  cmd.OutOrStdout(),
		NoColor: o.noColor,
	})
	if err != nil {
		return err
	}

	session, err := OpenSession(o.cfg, o.log)
	if err == nil {
		err = fn(sink, session)
	}
	if err != nil {
		sink.PresentError(err)
		return &presentedError{err: err}
	}
	return nil
}

// parseIDs accepts ids as separate arguments or comma-separated lists
func parseIDs(args []string) []entities.OrderID {
	var ids []entities.OrderID
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, entities.OrderID(part))
			}
		}
	}
	return ids
}

func (o *rootOptions) parseStart(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return scheduling.NormalizeDate(o.now()), nil
	}
	start, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", raw)
	}
	return start, nil
}
