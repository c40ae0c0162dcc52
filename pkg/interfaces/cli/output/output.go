package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// Sink renders planning results. Each CLI command hands its result to exactly
// one sink, chosen by --format.
type Sink interface {
	PresentOrders(orders []*entities.Order) error
	PresentCustomers(customers []string) error
	PresentStock(lines []entities.StockLine) error
	PresentBalance(report *dto.BalanceReport) error
	PresentReservation(result *dto.ReservationResult) error
	PresentSchedule(report *dto.ScheduleReport) error
	PresentUtilization(report *dto.UtilizationReport) error
	PresentPlan(result *dto.PlanResult) error
	PresentPurchaseOrder(po *entities.PurchaseOrder) error
	PresentError(err error)
}

// Supported formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
	FormatSVG  = "svg"
)

// Config holds configuration for sink construction
type Config struct {
	Format  string
	Output  string // file path; required for xlsx, optional otherwise
	Writer  io.Writer
	NoColor bool
}

// New creates the sink for the configured format. Text, JSON, YAML and SVG
// write to Output when set, otherwise to Writer.
func New(config Config) (Sink, error) {
	format := strings.ToLower(strings.TrimSpace(config.Format))
	if format == "" {
		format = FormatText
	}

	if format == FormatXLSX {
		if config.Output == "" {
			return nil, fmt.Errorf("output file required for xlsx format")
		}
		return NewXLSXSink(config.Output), nil
	}

	w := config.Writer
	if w == nil {
		w = os.Stdout
	}
	if config.Output != "" {
		w = &fileWriter{path: config.Output}
	}

	switch format {
	case FormatText:
		return NewTextSink(w, !config.NoColor && isTerminal(w)), nil
	case FormatJSON:
		return NewJSONSink(w), nil
	case FormatYAML:
		return NewYAMLSink(w), nil
	case FormatSVG:
		return NewSVGSink(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// fileWriter truncates the target file on its first write and appends after
// that, so every document presented by one command lands in the file
type fileWriter struct {
	path    string
	written bool
}

func (fw *fileWriter) Write(p []byte) (int, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !fw.written {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(fw.path, flags, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", fw.path, err)
	}
	defer f.Close()

	fw.written = true
	return f.Write(p)
}
