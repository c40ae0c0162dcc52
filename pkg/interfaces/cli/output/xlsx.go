package output

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// XLSXSink exports each result as a workbook saved to path
type XLSXSink struct {
	path   string
	errOut io.Writer
}

var _ Sink = (*XLSXSink)(nil)

// NewXLSXSink creates a workbook sink; errors are reported on stderr
func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{path: path, errOut: os.Stderr}
}

type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

func (s *XLSXSink) save(sheets ...sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sh.name, err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return fmt.Errorf("sheet %s: failed to write header: %w", sh.name, err)
		}
		for r, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sh.name, r+2, err)
			}
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}

func ordersSheet(orders []*entities.Order) sheet {
	sh := sheet{
		name:   "Orders",
		header: []interface{}{"Order Number", "Customer", "Product Type", "Area", "Value", "Status", "Priority"},
	}
	for _, o := range orders {
		sh.rows = append(sh.rows, []interface{}{
			string(o.ID), o.Customer, string(o.ProductType), o.Area, o.Value.InexactFloat64(), o.Status, o.Priority,
		})
	}
	return sh
}

func balanceSheets(report *dto.BalanceReport) []sheet {
	balance := sheet{
		name:   "Material Balance",
		header: []interface{}{"Material", "Stock", "Reserved", "Available", "Required", "Remainder"},
	}
	for _, m := range report.MaterialBalance {
		balance.rows = append(balance.rows, []interface{}{
			string(m.Material), m.Stock, m.Reserved, m.Available, m.Required, m.Remainder,
		})
	}

	purchase := sheet{
		name:   "Purchase Requirements",
		header: []interface{}{"Material", "Quantity", "Urgent"},
	}
	for _, material := range report.PurchaseRequirements.Materials() {
		_, urgent := report.UrgentPurchase[material]
		purchase.rows = append(purchase.rows, []interface{}{
			string(material), report.PurchaseRequirements.Get(material), urgent,
		})
	}
	return []sheet{balance, purchase}
}

func scheduleSheet(report *dto.ScheduleReport) sheet {
	sh := sheet{
		name: "Schedule",
		header: []interface{}{
			"Order Number", "Customer", "Product Type", "Area", "Priority",
			"Start", "End", "Duration Days", "Hours",
		},
	}
	for _, e := range report.Entries {
		sh.rows = append(sh.rows, []interface{}{
			string(e.OrderID), e.Customer, string(e.ProductType), e.Area, e.Priority,
			e.StartDate.Format(dateLayout), e.EndDate.Format(dateLayout), e.DurationDays, e.TotalHours,
		})
	}
	return sh
}

func utilizationSheet(report *dto.UtilizationReport) sheet {
	sh := sheet{
		name:   "Utilization",
		header: []interface{}{"Machine", "Workload Hours", "Capacity Hours", "Utilization %", "Band"},
	}
	for _, m := range report.Machines {
		sh.rows = append(sh.rows, []interface{}{
			string(m.Machine), m.WorkloadHours, m.CapacityHours, m.Percent, m.Band.String(),
		})
	}
	return sh
}

func (s *XLSXSink) PresentOrders(orders []*entities.Order) error {
	return s.save(ordersSheet(orders))
}

func (s *XLSXSink) PresentCustomers(customers []string) error {
	sh := sheet{name: "Customers", header: []interface{}{"Customer"}}
	for _, c := range customers {
		sh.rows = append(sh.rows, []interface{}{c})
	}
	return s.save(sh)
}

func (s *XLSXSink) PresentStock(lines []entities.StockLine) error {
	sh := sheet{
		name:   "Stock",
		header: []interface{}{"Material", "Stock", "Reserved", "Available", "Status"},
	}
	for _, l := range lines {
		sh.rows = append(sh.rows, []interface{}{string(l.Material), l.Stock, l.Reserved, l.Available, l.Status.String()})
	}
	return s.save(sh)
}

func (s *XLSXSink) PresentBalance(report *dto.BalanceReport) error {
	return s.save(balanceSheets(report)...)
}

func (s *XLSXSink) PresentReservation(result *dto.ReservationResult) error {
	sh := sheet{
		name:   "Reservation",
		header: []interface{}{"Material", "Change", "Reserved"},
	}
	for _, material := range result.Deltas.Materials() {
		sh.rows = append(sh.rows, []interface{}{
			string(material), result.Deltas.Get(material), result.Reserved.Get(material),
		})
	}
	return s.save(sh)
}

func (s *XLSXSink) PresentSchedule(report *dto.ScheduleReport) error {
	return s.save(scheduleSheet(report))
}

func (s *XLSXSink) PresentUtilization(report *dto.UtilizationReport) error {
	return s.save(utilizationSheet(report))
}

func (s *XLSXSink) PresentPlan(result *dto.PlanResult) error {
	var sheets []sheet
	if result.Balance != nil {
		sheets = append(sheets, balanceSheets(result.Balance)...)
	}
	if result.Schedule != nil {
		sheets = append(sheets, scheduleSheet(result.Schedule))
	}
	if result.Utilization != nil {
		sheets = append(sheets, utilizationSheet(result.Utilization))
	}
	return s.save(sheets...)
}

func (s *XLSXSink) PresentPurchaseOrder(po *entities.PurchaseOrder) error {
	sh := sheet{
		name:   "Purchase Order",
		header: []interface{}{"Material", "Quantity", "Unit Price", "Cost", "Urgent"},
	}
	for _, line := range po.Lines {
		sh.rows = append(sh.rows, []interface{}{
			string(line.Material), line.Quantity, line.UnitPrice.InexactFloat64(), line.Cost.InexactFloat64(), line.Urgent,
		})
	}
	sh.rows = append(sh.rows, []interface{}{"TOTAL", nil, nil, po.Total.InexactFloat64(), po.UrgentCount})
	return s.save(sh)
}

func (s *XLSXSink) PresentError(err error) {
	fmt.Fprintf(s.errOut, "Error: %v\n", err)
}
