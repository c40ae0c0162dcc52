package output

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

const day = 24 * time.Hour

// GanttChart lays out a production schedule as one bar per order
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	StartTime    time.Time
	EndTime      time.Time
}

// GanttBar represents a single order on the chart
type GanttBar struct {
	OrderID     entities.OrderID
	Customer    string
	ProductType entities.ProductType
	StartDate   time.Time
	EndDate     time.Time
	Hours       float64
	X           int
	Y           int
	Width       int
	Color       string
}

var productColors = []string{"#4CAF50", "#2196F3", "#FF9800", "#9C27B0", "#009688", "#795548"}

// NewGanttChart sizes a chart for the schedule
func NewGanttChart(report *dto.ScheduleReport) *GanttChart {
	if len(report.Entries) == 0 {
		return &GanttChart{
			Width:        800,
			Height:       200,
			MarginLeft:   150,
			MarginTop:    50,
			MarginRight:  50,
			MarginBottom: 50,
			RowHeight:    25,
		}
	}

	rowHeight := 30
	return &GanttChart{
		Width:        1200,
		Height:       len(report.Entries)*rowHeight + 160,
		MarginLeft:   200,
		MarginTop:    60,
		MarginRight:  100,
		MarginBottom: 80,
		RowHeight:    rowHeight,
		StartTime:    report.StartDate,
		EndTime:      report.EndDate(),
	}
}

// GenerateSVG renders the schedule as an SVG document
func (gc *GanttChart) GenerateSVG(report *dto.ScheduleReport) string {
	if len(report.Entries) == 0 {
		return gc.generateEmptyChart()
	}

	var svg strings.Builder

	fmt.Fprintf(&svg, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height)
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.order-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.order-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.order-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style></defs>`)

	fmt.Fprintf(&svg, `<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height)
	fmt.Fprintf(&svg, `<text x="%d" y="30" class="title" text-anchor="middle">Production Schedule %s to %s</text>`,
		gc.Width/2, gc.StartTime.Format(dateLayout), gc.EndTime.Format(dateLayout))

	colors := productPalette(report.Entries)
	bars := gc.createBars(report.Entries, colors)

	gc.drawTimeAxis(&svg, len(bars))
	for _, bar := range bars {
		gc.drawBar(&svg, bar)
	}
	gc.drawLegend(&svg, colors)

	svg.WriteString(`</svg>`)
	return svg.String()
}

// productPalette assigns a stable colour to every product type
func productPalette(entries []entities.ScheduleEntry) map[entities.ProductType]string {
	var types []entities.ProductType
	seen := make(map[entities.ProductType]bool)
	for _, e := range entries {
		if !seen[e.ProductType] {
			seen[e.ProductType] = true
			types = append(types, e.ProductType)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	colors := make(map[entities.ProductType]string, len(types))
	for i, t := range types {
		colors[t] = productColors[i%len(productColors)]
	}
	return colors
}

func (gc *GanttChart) xFor(t time.Time) int {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	total := gc.EndTime.Sub(gc.StartTime)
	if total <= 0 {
		return gc.MarginLeft
	}
	return gc.MarginLeft + int(float64(t.Sub(gc.StartTime))/float64(total)*float64(chartWidth))
}

// createBars places entries top to bottom in schedule order
func (gc *GanttChart) createBars(entries []entities.ScheduleEntry, colors map[entities.ProductType]string) []GanttBar {
	bars := make([]GanttBar, 0, len(entries))
	for i, e := range entries {
		x := gc.xFor(e.StartDate)
		width := gc.xFor(e.EndDate) - x
		if width < 2 {
			width = 2
		}
		bars = append(bars, GanttBar{
			OrderID:     e.OrderID,
			Customer:    e.Customer,
			ProductType: e.ProductType,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Hours:       e.TotalHours,
			X:           x,
			Y:           gc.MarginTop + i*gc.RowHeight,
			Width:       width,
			Color:       colors[e.ProductType],
		})
	}
	return bars
}

// drawTimeAxis draws day labels and vertical grid lines; weekly past a month
func (gc *GanttChart) drawTimeAxis(svg *strings.Builder, rows int) {
	interval := day
	if gc.EndTime.Sub(gc.StartTime) > 30*day {
		interval = 7 * day
	}

	gridBottom := gc.MarginTop + rows*gc.RowHeight
	for t := gc.StartTime; !t.After(gc.EndTime); t = t.Add(interval) {
		x := gc.xFor(t)
		fmt.Fprintf(svg, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`, x, gc.MarginTop, x, gridBottom)
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`,
			x, gridBottom+15, t.Format("Jan 2"))
	}
}

func (gc *GanttChart) drawBar(svg *strings.Builder, bar GanttBar) {
	barHeight := gc.RowHeight - 4
	barY := bar.Y + 2

	fmt.Fprintf(svg, `<text x="%d" y="%d" class="order-label" text-anchor="end">%s</text>`,
		gc.MarginLeft-15, bar.Y+gc.RowHeight/2+4, html.EscapeString(fmt.Sprintf("%s %s", bar.OrderID, bar.Customer)))

	fmt.Fprintf(svg, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="order-bar">`,
		bar.X, barY, bar.Width, barHeight, bar.Color)
	fmt.Fprintf(svg, `<title>%s</title></rect>`, html.EscapeString(fmt.Sprintf(
		"Order: %s, Product: %s, Start: %s, End: %s, Hours: %.1f",
		bar.OrderID, bar.ProductType,
		bar.StartDate.Format(dateLayout), bar.EndDate.Format(dateLayout), bar.Hours)))

	if bar.Width > 40 {
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="order-text" text-anchor="middle">%.1f h</text>`,
			bar.X+bar.Width/2, barY+barHeight/2+3, bar.Hours)
	}
}

func (gc *GanttChart) drawLegend(svg *strings.Builder, colors map[entities.ProductType]string) {
	types := make([]entities.ProductType, 0, len(colors))
	for t := range colors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	legendX := gc.Width - gc.MarginRight - 180
	legendY := gc.Height - gc.MarginBottom + 30
	for i, t := range types {
		x := legendX + (i%3)*60
		y := legendY + (i/3)*12
		fmt.Fprintf(svg, `<rect x="%d" y="%d" width="12" height="8" fill="%s"/>`, x, y, colors[t])
		fmt.Fprintf(svg, `<text x="%d" y="%d" class="time-label">%s</text>`, x+16, y+8, html.EscapeString(string(t)))
	}
}

func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Orders Scheduled</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, gc.Width, gc.Height, gc.Width, gc.Height, gc.Width/2, gc.Height/2)
}

// SVGSink renders schedules as Gantt charts; other results are rejected
type SVGSink struct {
	w      io.Writer
	errOut io.Writer
}

var _ Sink = (*SVGSink)(nil)

// NewSVGSink creates a Gantt chart sink
func NewSVGSink(w io.Writer) *SVGSink {
	return &SVGSink{w: w, errOut: os.Stderr}
}

func unsupportedSVG(what string) error {
	return fmt.Errorf("svg format only supports schedules, not %s", what)
}

func (s *SVGSink) PresentSchedule(report *dto.ScheduleReport) error {
	_, err := io.WriteString(s.w, NewGanttChart(report).GenerateSVG(report))
	return err
}

func (s *SVGSink) PresentPlan(result *dto.PlanResult) error {
	if result.Schedule == nil {
		return unsupportedSVG("plans without a schedule")
	}
	return s.PresentSchedule(result.Schedule)
}

func (s *SVGSink) PresentOrders([]*entities.Order) error { return unsupportedSVG("orders") }

func (s *SVGSink) PresentCustomers([]string) error { return unsupportedSVG("customers") }

func (s *SVGSink) PresentStock([]entities.StockLine) error { return unsupportedSVG("stock") }

func (s *SVGSink) PresentBalance(*dto.BalanceReport) error { return unsupportedSVG("balances") }

func (s *SVGSink) PresentReservation(*dto.ReservationResult) error {
	return unsupportedSVG("reservations")
}

func (s *SVGSink) PresentUtilization(*dto.UtilizationReport) error {
	return unsupportedSVG("utilization")
}

func (s *SVGSink) PresentPurchaseOrder(*entities.PurchaseOrder) error {
	return unsupportedSVG("purchase orders")
}

func (s *SVGSink) PresentError(err error) {
	fmt.Fprintf(s.errOut, "Error: %v\n", err)
}
