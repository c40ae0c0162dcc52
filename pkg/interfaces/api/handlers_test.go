package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodplan/pkg/application/services/orchestration"
	"github.com/vsinha/prodplan/pkg/application/services/reservation"
	testinghelpers "github.com/vsinha/prodplan/pkg/application/services/testing"
	"github.com/vsinha/prodplan/pkg/infrastructure/events"
	"github.com/vsinha/prodplan/pkg/infrastructure/metrics"
)

func newTestRouter(t *testing.T) (*gin.Engine, *events.InMemoryEventStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := testinghelpers.BuildWorkshopCatalog()
	store := events.NewInMemoryEventStore(nil)
	m := metrics.New()

	opts := orchestration.DefaultOptions()
	opts.Observer = m
	opts.ReservationOptions = []reservation.Option{
		reservation.WithEventStore(store),
		reservation.WithRecorder(m),
		reservation.WithRejectRecommit(true),
	}
	planner, err := orchestration.NewPlanningOrchestrator(catalog.Orders, catalog.Requirements, catalog.Stock, opts)
	if err != nil {
		t.Fatalf("Failed to create orchestrator: %v", err)
	}

	router := NewRouter(RouterConfig{
		Handler: NewHandler(planner, store, nil),
		Metrics: m.Handler(),
	})
	return router, store
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRouter_Browsing(t *testing.T) {
	router, _ := newTestRouter(t)

	if w := do(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("Expected health 200, got %d", w.Code)
	}

	w := do(router, http.MethodGet, "/api/customers", "")
	customers := decode(t, w)["customers"].([]interface{})
	if len(customers) != 3 || customers[0] != "Acme Glazing" {
		t.Errorf("Unexpected customers: %v", customers)
	}

	w = do(router, http.MethodGet, "/api/orders?customer=Acme%20Glazing", "")
	orders := decode(t, w)["orders"].([]interface{})
	if len(orders) != 2 {
		t.Errorf("Expected 2 Acme orders, got %d", len(orders))
	}

	w = do(router, http.MethodGet, "/api/stock", "")
	stock := decode(t, w)["stock"].([]interface{})
	if len(stock) != 7 {
		t.Errorf("Expected 7 stocked materials, got %d", len(stock))
	}
}

func TestRouter_Balance(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/balance", `{"order_ids": ["1003", "1001"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if len(body["material_balance"].([]interface{})) != 5 {
		t.Errorf("Expected 5 balanced materials, got %v", body["material_balance"])
	}
	urgent := body["urgent_purchase"].(map[string]interface{})
	if len(urgent) != 3 || urgent["Glass 4mm"] != 16.0 {
		t.Errorf("Unexpected urgent purchases: %v", urgent)
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)

	testCases := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"empty selection", "/api/balance", `{"order_ids": []}`, http.StatusBadRequest, "no orders selected"},
		{"blank ids", "/api/schedule", `{"order_ids": [" "]}`, http.StatusBadRequest, "no orders selected"},
		{"unknown orders", "/api/schedule", `{"order_ids": ["NOPE"]}`, http.StatusNotFound, "none of the selected orders exist in the catalog"},
		{"bad date", "/api/plan", `{"order_ids": ["1001"], "start_date": "03/03/2025"}`, http.StatusBadRequest,
			`bad request: invalid start_date "03/03/2025", expected YYYY-MM-DD`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(router, http.MethodPost, tc.path, tc.body)
			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if got := decode(t, w)["error"]; got != tc.wantError {
				t.Errorf("Expected error '%s', got '%v'", tc.wantError, got)
			}
		})
	}

	w := do(router, http.MethodPost, "/api/balance", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", w.Code)
	}
}

func TestRouter_ReservationLifecycle(t *testing.T) {
	router, store := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/reservations/commit", `{"order_ids": ["1001"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected commit 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(router, http.MethodPost, "/api/reservations/commit", `{"order_ids": ["1001"]}`)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected recommit 409, got %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "order materials already reserved: [1001]" {
		t.Errorf("Unexpected conflict message: %v", got)
	}

	w = do(router, http.MethodGet, "/api/reservations", "")
	snapshot := decode(t, w)
	reserved := snapshot["reserved"].(map[string]interface{})
	if reserved["PVC profile"] != 12.0 || reserved["Glass 4mm"] != 6.0 {
		t.Errorf("Unexpected reservations: %v", reserved)
	}
	if committed := snapshot["committed_orders"].([]interface{}); len(committed) != 1 || committed[0] != "1001" {
		t.Errorf("Unexpected committed orders: %v", committed)
	}

	w = do(router, http.MethodPost, "/api/balance", `{"order_ids": ["1003"]}`)
	body := decode(t, w)
	for _, raw := range body["material_balance"].([]interface{}) {
		line := raw.(map[string]interface{})
		if line["material"] == "Glass 4mm" && line["available"] != 4.0 {
			t.Errorf("Expected reserved glass to reduce availability to 4, got %v", line["available"])
		}
	}

	w = do(router, http.MethodPost, "/api/reservations/release", `{"order_ids": ["1001"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected release 200, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/api/reservations/events", "")
	list := decode(t, w)["events"].([]interface{})
	if len(list) != 2 {
		t.Fatalf("Expected 2 ledger events, got %d", len(list))
	}
	if first := list[0].(map[string]interface{}); first["type"] != events.ReservationCommittedEvent {
		t.Errorf("Expected first event to be a commit, got %v", first["type"])
	}

	w = do(router, http.MethodGet, "/api/reservations/events?since=2", "")
	list = decode(t, w)["events"].([]interface{})
	if len(list) != 1 || list[0].(map[string]interface{})["type"] != events.ReservationReleasedEvent {
		t.Errorf("Expected only the release event since version 2, got %v", list)
	}
	if store.Version(events.LedgerStream) != 2 {
		t.Errorf("Expected ledger stream version 2, got %d", store.Version(events.LedgerStream))
	}

	w = do(router, http.MethodGet, "/api/reservations/events?since=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad since cursor, got %d", w.Code)
	}

	w = do(router, http.MethodGet, "/metrics", "")
	if !strings.Contains(w.Body.String(), `planner_reservation_operations_total{operation="commit"} 1`) {
		t.Errorf("Expected commit counter in metrics output")
	}
}

func TestRouter_PlanAndPurchaseOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/plan", `{"order_ids": ["1001", "1002"], "start_date": "2025-03-03"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected plan 200, got %d: %s", w.Code, w.Body.String())
	}
	schedule := decode(t, w)["schedule"].(map[string]interface{})
	if schedule["start_date"] != "2025-03-03T00:00:00Z" || schedule["total_orders"] != 2.0 {
		t.Errorf("Unexpected schedule: %v", schedule)
	}

	w = do(router, http.MethodPost, "/api/purchase-order", `{"order_ids": ["1001", "1003"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected purchase order 200, got %d", w.Code)
	}
	po := decode(t, w)
	if po["total"] != "25900" || po["urgent_count"] != 3.0 {
		t.Errorf("Unexpected purchase order: total=%v urgent=%v", po["total"], po["urgent_count"])
	}
}
