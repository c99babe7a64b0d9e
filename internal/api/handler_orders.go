package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/model"
	"tableorder-backend/internal/store"
)

type orderLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	TableNumber int                `json:"table_number" binding:"required,gt=0"`
	DeviceID    string             `json:"device_id" binding:"required"`
	Items       []orderLineRequest `json:"items" binding:"required"`
	// Optional caller-computed aggregates, cross-checked server-side.
	TotalAmount        *decimal.Decimal `json:"total_amount"`
	MaxPrepTimeMinutes *int             `json:"max_prep_time_minutes"`
}

// CreateOrder handles POST /api/orders (public). The store resolves prices
// and aggregates from the catalog inside one transaction.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]model.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = model.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity}
	}

	order, err := h.store.CreateOrder(c.Request.Context(), store.NewOrder{
		TableNumber:        req.TableNumber,
		DeviceID:           req.DeviceID,
		Lines:              lines,
		TotalAmount:        req.TotalAmount,
		MaxPrepTimeMinutes: req.MaxPrepTimeMinutes,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityOrder, events.ActionCreated, order)
	h.notify(order.TableNumber, fmt.Sprintf("Table %d placed a new order", order.TableNumber))
	c.JSON(http.StatusCreated, order)
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PUT /api/orders/:id/status (public). Only
// forward transitions are accepted.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.store.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityOrder, events.ActionUpdated, order)
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/orders (public). Filters: table, status,
// since, until; FIFO order by creation time.
func (h *Handler) ListOrders(c *gin.Context) {
	var f store.OrderFilter
	if v := c.Query("table"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'table' filter"})
			return
		}
		f.TableNumber = &n
	}
	if v := c.Query("status"); v != "" {
		status := model.OrderStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'status' filter"})
			return
		}
		f.Status = &status
	}
	var ok bool
	if f.Since, ok = timeQuery(c, "since"); !ok {
		return
	}
	if f.Until, ok = timeQuery(c, "until"); !ok {
		return
	}

	orders, err := h.store.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// timeQuery parses an optional RFC3339 query parameter.
func timeQuery(c *gin.Context, key string) (*time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid '" + key + "' timestamp format. Use RFC3339."})
		return nil, false
	}
	return &t, true
}
