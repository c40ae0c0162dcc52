package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/prodplan/pkg/application/services/orchestration"
	"github.com/vsinha/prodplan/pkg/application/services/scheduling"
	"github.com/vsinha/prodplan/pkg/domain/entities"
	"github.com/vsinha/prodplan/pkg/infrastructure/events"
	"github.com/vsinha/prodplan/pkg/infrastructure/logger"
)

const dateLayout = "2006-01-02"

// SelectionRequest is the body of every selection-based endpoint
type SelectionRequest struct {
	OrderIDs  []entities.OrderID `json:"order_ids"`
	StartDate string             `json:"start_date"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the planning API over one planning session
type Handler struct {
	planner *orchestration.PlanningOrchestrator
	events  events.EventStore
	log     *logger.Logger
	now     func() time.Time
}

// NewHandler creates the API handler; store may be nil when no audit trail is kept
func NewHandler(planner *orchestration.PlanningOrchestrator, store events.EventStore, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		planner: planner,
		events:  store,
		log:     log.With("component", "api"),
		now:     time.Now,
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entities.ErrEmptySelection), errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrNoMatchingOrders):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrOrderAlreadyCommitted):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

var errBadRequest = errors.New("bad request")

func (h *Handler) bindSelection(c *gin.Context) (SelectionRequest, time.Time, error) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, time.Time{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	start := h.now()
	if s := strings.TrimSpace(req.StartDate); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return req, time.Time{}, fmt.Errorf("%w: invalid start_date %q, expected YYYY-MM-DD", errBadRequest, s)
		}
		start = parsed
	}
	return req, scheduling.NormalizeDate(start), nil
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListOrders handles GET /api/orders?customer=&search=
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.planner.Catalog().FilterOrders(c.Query("customer"), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListCustomers handles GET /api/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.planner.Catalog().Customers()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// Stock handles GET /api/stock
func (h *Handler) Stock(c *gin.Context) {
	lines, err := h.planner.Reservations().StockOverview()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": lines})
}

// Balance handles POST /api/balance
func (h *Handler) Balance(c *gin.Context) {
	req, _, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	report, err := h.planner.Balance(req.OrderIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Commit handles POST /api/reservations/commit
func (h *Handler) Commit(c *gin.Context) {
	req, _, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.planner.Reservations().Commit(req.OrderIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Release handles POST /api/reservations/release
func (h *Handler) Release(c *gin.Context) {
	req, _, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.planner.Reservations().Release(req.OrderIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reservations handles GET /api/reservations
func (h *Handler) Reservations(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.Reservations().Ledger().Snapshot())
}

// ReservationEvents handles GET /api/reservations/events?since=N
func (h *Handler) ReservationEvents(c *gin.Context) {
	since := 0
	if raw := c.Query("since"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			h.respondError(c, fmt.Errorf("%w: invalid since %q, expected a non-negative version", errBadRequest, raw))
			return
		}
		since = v
	}

	if h.events == nil {
		c.JSON(http.StatusOK, gin.H{"events": []events.Event{}})
		return
	}
	list, err := h.events.ReadEvents(events.LedgerStream, since)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list})
}

// Schedule handles POST /api/schedule
func (h *Handler) Schedule(c *gin.Context) {
	req, start, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	report, err := h.planner.Schedule(req.OrderIDs, start)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Utilization handles POST /api/utilization
func (h *Handler) Utilization(c *gin.Context) {
	req, start, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	report, err := h.planner.Utilization(req.OrderIDs, start)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Plan handles POST /api/plan
func (h *Handler) Plan(c *gin.Context) {
	req, start, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.planner.Plan(c.Request.Context(), req.OrderIDs, start)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PurchaseOrder handles POST /api/purchase-order
func (h *Handler) PurchaseOrder(c *gin.Context) {
	req, _, err := h.bindSelection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	po, err := h.planner.PurchaseOrder(req.OrderIDs, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, po)
}
