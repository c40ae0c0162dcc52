package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vsinha/prodplan/pkg/domain/entities"
)

func TestMetrics_RecordReservation(t *testing.T) {
	m := New()

	m.RecordReservation("commit", entities.Quantities{"Glass": 10, "Profile": 4}, time.Millisecond)
	m.RecordReservation("release", entities.Quantities{"Profile": 4}, time.Millisecond)

	if got := testutil.ToFloat64(m.reservationOps.WithLabelValues("commit")); got != 1 {
		t.Errorf("Expected 1 commit, got %.0f", got)
	}
	if got := testutil.ToFloat64(m.reservationOps.WithLabelValues("release")); got != 1 {
		t.Errorf("Expected 1 release, got %.0f", got)
	}
	if got := testutil.ToFloat64(m.reservedQuantity.WithLabelValues("Profile")); got != 4 {
		t.Errorf("Expected Profile gauge 4, got %.2f", got)
	}
	if got := testutil.ToFloat64(m.reservedQuantity.WithLabelValues("Glass")); got != 0 {
		t.Errorf("Expected released Glass gauge to read 0, got %.2f", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveOperation("schedule", 2*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `planner_operation_duration_seconds_count{operation="schedule"} 1`) {
		t.Errorf("Expected schedule histogram in exposition, got:\n%s", rec.Body.String())
	}
}
