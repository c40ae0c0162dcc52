package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/prodplan/pkg/application/dto"
	"github.com/vsinha/prodplan/pkg/domain/entities"
)

// EncodedSink serializes every result as one JSON or YAML document
type EncodedSink struct {
	w      io.Writer
	encode func(v interface{}) ([]byte, error)
}

var _ Sink = (*EncodedSink)(nil)

// NewJSONSink creates a sink writing indented JSON
func NewJSONSink(w io.Writer) *EncodedSink {
	return &EncodedSink{w: w, encode: func(v interface{}) ([]byte, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	}}
}

// NewYAMLSink creates a sink writing YAML documents
func NewYAMLSink(w io.Writer) *EncodedSink {
	return &EncodedSink{w: w, encode: func(v interface{}) ([]byte, error) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return buf.Bytes(), nil
	}}
}

func (s *EncodedSink) write(v interface{}) error {
	data, err := s.encode(v)
	if err != nil {
		return err
	}
	_, err = s.w.Write(data)
	return err
}

func (s *EncodedSink) PresentOrders(orders []*entities.Order) error {
	return s.write(map[string]interface{}{"orders": orders})
}

func (s *EncodedSink) PresentCustomers(customers []string) error {
	return s.write(map[string]interface{}{"customers": customers})
}

func (s *EncodedSink) PresentStock(lines []entities.StockLine) error {
	return s.write(map[string]interface{}{"stock": lines})
}

func (s *EncodedSink) PresentBalance(report *dto.BalanceReport) error {
	return s.write(report)
}

func (s *EncodedSink) PresentReservation(result *dto.ReservationResult) error {
	return s.write(result)
}

func (s *EncodedSink) PresentSchedule(report *dto.ScheduleReport) error {
	return s.write(report)
}

func (s *EncodedSink) PresentUtilization(report *dto.UtilizationReport) error {
	return s.write(report)
}

func (s *EncodedSink) PresentPlan(result *dto.PlanResult) error {
	return s.write(result)
}

func (s *EncodedSink) PresentPurchaseOrder(po *entities.PurchaseOrder) error {
	return s.write(po)
}

func (s *EncodedSink) PresentError(err error) {
	_ = s.write(map[string]string{"error": err.Error()})
}
