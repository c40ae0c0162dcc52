package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/application/services/purchasing"
	"github.com/vsinha/prodplan/pkg/application/services/reservation"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// TextSink prints human-readable tables
type TextSink struct {
	w      io.Writer
	header *color.Color
	ok     *color.Color
	warn   *color.Color
	bad    *color.Color
}

var _ Sink = (*TextSink)(nil)

// NewTextSink creates a text sink; colorize false strips all ANSI sequences
func NewTextSink(w io.Writer, colorize bool) *TextSink {
	s := &TextSink{
		w:      w,
		header: color.New(color.Bold, color.FgCyan),
		ok:     color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		bad:    color.New(color.FgHiRed),
	}
	for _, c := range []*color.Color{s.header, s.ok, s.warn, s.bad} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *TextSink) flush(b *strings.Builder) error {
	_, err := io.WriteString(s.w, b.String())
	return err
}

func (s *TextSink) PresentOrders(orders []*entities.Order) error {
	var b strings.Builder
	s.header.Fprintf(&b, "Orders (%d)\n", len(orders))
	fmt.Fprintf(&b, "%-10s %-20s %-12s %8s %14s %-16s %8s\n",
		"Order", "Customer", "Product", "Area", "Value", "Status", "Priority")
	fmt.Fprintf(&b, "%-10s %-20s %-12s %8s %14s %-16s %8s\n",
		"----------", "--------------------", "------------", "--------", "--------------", "----------------", "--------")
	for _, o := range orders {
		fmt.Fprintf(&b, "%-10s %-20s %-12s %8.2f %14s %-16s %8d\n",
			o.ID, o.Customer, o.ProductType, o.Area, o.Value.StringFixed(2), o.Status, o.Priority)
	}
	return s.flush(&b)
}

func (s *TextSink) PresentCustomers(customers []string) error {
	var b strings.Builder
	s.header.Fprintf(&b, "Customers (%d)\n", len(customers))
	for _, c := range customers {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	return s.flush(&b)
}

func (s *TextSink) PresentStock(lines []entities.StockLine) error {
	var b strings.Builder
	s.header.Fprintln(&b, "Warehouse stock")
	fmt.Fprintf(&b, "%-24s %10s %10s %10s  %s\n", "Material", "Stock", "Reserved", "Available", "Status")
	for _, l := range lines {
		fmt.Fprintf(&b, "%-24s %10.2f %10.2f %10.2f  ", l.Material, l.Stock, l.Reserved, l.Available)
		s.statusColor(l.Status).Fprintln(&b, l.Status)
	}
	return s.flush(&b)
}

func (s *TextSink) statusColor(status entities.StockStatus) *color.Color {
	switch status {
	case entities.InStock:
		return s.ok
	case entities.Reserved:
		return s.warn
	default:
		return s.bad
	}
}

func (s *TextSink) writeBalance(b *strings.Builder, report *dto.BalanceReport) {
	s.header.Fprintf(b, "Material balance for orders: %s\n", joinIDs(report.Orders))
	fmt.Fprintf(b, "%-24s %10s %10s %10s %10s %10s\n",
		"Material", "Stock", "Reserved", "Available", "Required", "Remainder")
	for _, m := range report.MaterialBalance {
		fmt.Fprintf(b, "%-24s %10.2f %10.2f %10.2f %10.2f ",
			m.Material, m.Stock, m.Reserved, m.Available, m.Required)
		if m.Remainder < 0 {
			s.bad.Fprintf(b, "%10.2f\n", m.Remainder)
		} else {
			s.ok.Fprintf(b, "%10.2f\n", m.Remainder)
		}
	}

	if !report.PurchaseNeeded() {
		s.ok.Fprintln(b, "All materials are covered by available stock")
		return
	}
	fmt.Fprintln(b)
	s.header.Fprintln(b, "Purchase requirements")
	for _, material := range report.PurchaseRequirements.Materials() {
		fmt.Fprintf(b, "  %-24s %10.2f", material, report.PurchaseRequirements.Get(material))
		if _, urgent := report.UrgentPurchase[material]; urgent {
			s.bad.Fprint(b, "  URGENT")
		}
		fmt.Fprintln(b)
	}
}

func (s *TextSink) PresentBalance(report *dto.BalanceReport) error {
	var b strings.Builder
	s.writeBalance(&b, report)
	return s.flush(&b)
}

func (s *TextSink) PresentReservation(result *dto.ReservationResult) error {
	var b strings.Builder
	s.header.Fprintf(&b, "Reservation %s: %s\n", result.Operation, joinIDs(result.Orders))
	if len(result.Skipped) > 0 {
		s.warn.Fprintf(&b, "Already committed, skipped: %s\n", joinIDs(result.Skipped))
	}
	sign := 1.0
	if result.Operation == reservation.OperationRelease {
		sign = -1
	}
	for _, material := range result.Deltas.Materials() {
		fmt.Fprintf(&b, "  %-24s %+10.2f  reserved %.2f\n",
			material, sign*result.Deltas.Get(material), result.Reserved.Get(material))
	}
	return s.flush(&b)
}

func (s *TextSink) writeSchedule(b *strings.Builder, report *dto.ScheduleReport) {
	s.header.Fprintf(b, "Production schedule from %s\n", report.StartDate.Format(dateLayout))
	fmt.Fprintf(b, "%-10s %-20s %-12s %8s %8s %-12s %-12s %6s %8s\n",
		"Order", "Customer", "Product", "Area", "Priority", "Start", "End", "Days", "Hours")
	for _, e := range report.Entries {
		fmt.Fprintf(b, "%-10s %-20s %-12s %8.2f %8d %-12s %-12s %6d %8.1f\n",
			e.OrderID, e.Customer, e.ProductType, e.Area, e.Priority,
			e.StartDate.Format(dateLayout), e.EndDate.Format(dateLayout), e.DurationDays, e.TotalHours)
	}
	fmt.Fprintf(b, "Total: %d orders, %d days, %.1f hours\n", report.TotalOrders, report.TotalDays, report.TotalHours)
}

func (s *TextSink) PresentSchedule(report *dto.ScheduleReport) error {
	var b strings.Builder
	s.writeSchedule(&b, report)
	return s.flush(&b)
}

func (s *TextSink) writeUtilization(b *strings.Builder, report *dto.UtilizationReport) {
	s.header.Fprintln(b, "Machine utilization")
	fmt.Fprintf(b, "%-14s %10s %10s %8s  %s\n", "Machine", "Workload", "Capacity", "Load", "Band")
	for _, m := range report.Machines {
		fmt.Fprintf(b, "%-14s %10.1f %10.1f %7.1f%%  ", m.Machine, m.WorkloadHours, m.CapacityHours, m.Percent)
		s.bandColor(m.Band).Fprintln(b, m.Band)
	}
}

func (s *TextSink) bandColor(band entities.UtilizationBand) *color.Color {
	switch band {
	case entities.Optimal:
		return s.ok
	case entities.Overloaded:
		return s.bad
	default:
		return s.warn
	}
}

func (s *TextSink) PresentUtilization(report *dto.UtilizationReport) error {
	var b strings.Builder
	s.writeUtilization(&b, report)
	return s.flush(&b)
}

func (s *TextSink) PresentPlan(result *dto.PlanResult) error {
	var b strings.Builder
	s.header.Fprintln(&b, result.GetSummary())
	fmt.Fprintln(&b)
	if result.Balance != nil {
		s.writeBalance(&b, result.Balance)
		fmt.Fprintln(&b)
	}
	if result.Schedule != nil {
		s.writeSchedule(&b, result.Schedule)
		fmt.Fprintln(&b)
	}
	if result.Utilization != nil {
		s.writeUtilization(&b, result.Utilization)
	}
	return s.flush(&b)
}

func (s *TextSink) PresentPurchaseOrder(po *entities.PurchaseOrder) error {
	if !po.Required() {
		var b strings.Builder
		s.ok.Fprintf(&b, "No purchase needed for orders: %s\n", joinIDs(po.Orders))
		return s.flush(&b)
	}
	_, err := io.WriteString(s.w, purchasing.Text(po))
	return err
}

func (s *TextSink) PresentError(err error) {
	s.bad.Fprintf(s.w, "Error: %v\n", err)
}

func joinIDs(ids []entities.OrderID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
