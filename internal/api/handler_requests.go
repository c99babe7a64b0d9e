package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/model"
	"tableorder-backend/internal/store"
)

type createRequestRequest struct {
	TableNumber int               `json:"table_number" binding:"required,gt=0"`
	RequestType model.RequestType `json:"request_type" binding:"required"`
	Amount      *decimal.Decimal  `json:"amount"`
}

var requestMessages = map[model.RequestType]string{
	model.RequestWater:     "Table %d asked for water",
	model.RequestBill:      "Table %d asked for the bill",
	model.RequestOrderMore: "Table %d wants to order more",
}

// CreateRequest handles POST /api/requests (public).
func (h *Handler) CreateRequest(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.store.CreateRequest(c.Request.Context(), store.NewRequest{
		TableNumber: req.TableNumber,
		RequestType: req.RequestType,
		Amount:      req.Amount,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityRequest, events.ActionCreated, request)
	h.notify(request.TableNumber, fmt.Sprintf(requestMessages[request.RequestType], request.TableNumber))
	c.JSON(http.StatusCreated, request)
}

// ServeRequest handles PUT /api/requests/:id/serve (public). Serving an
// already-served request is a no-op success.
func (h *Handler) ServeRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, changed, err := h.store.ServeRequest(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	if changed {
		h.publish(c, events.EntityRequest, events.ActionUpdated, request)
	}
	c.JSON(http.StatusOK, request)
}

// ListRequests handles GET /api/requests (public). Filters: table, served,
// since, until.
func (h *Handler) ListRequests(c *gin.Context) {
	var f store.RequestFilter
	if v := c.Query("table"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'table' filter"})
			return
		}
		f.TableNumber = &n
	}
	if v := c.Query("served"); v != "" {
		served, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'served' filter"})
			return
		}
		f.Served = &served
	}
	var ok bool
	if f.Since, ok = timeQuery(c, "since"); !ok {
		return
	}
	if f.Until, ok = timeQuery(c, "until"); !ok {
		return
	}

	requests, err := h.store.ListRequests(c.Request.Context(), f)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
