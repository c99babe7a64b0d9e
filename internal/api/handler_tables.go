package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/model"
)

func tableNumberParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table number"})
		return 0, false
	}
	return n, true
}

type createTableRequest struct {
	TableNumber int `json:"table_number" binding:"required,gt=0"`
}

// CreateTable handles POST /api/tables (staff only).
func (h *Handler) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.store.CreateTable(c.Request.Context(), req.TableNumber)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityTable, events.ActionCreated, table)
	c.JSON(http.StatusCreated, table)
}

// ListTables handles GET /api/tables (public, cached).
func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.store.ListTables(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

type tableStatusRequest struct {
	Status model.TableStatus `json:"status" binding:"required"`
}

// SetTableStatus handles PUT /api/tables/:number/status (staff only).
func (h *Handler) SetTableStatus(c *gin.Context) {
	number, ok := tableNumberParam(c)
	if !ok {
		return
	}

	var req tableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table, err := h.store.SetTableStatus(c.Request.Context(), number, req.Status)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityTable, events.ActionUpdated, table)
	c.JSON(http.StatusOK, table)
}

// DeleteTable handles DELETE /api/tables/:number (staff only). Sessions,
// orders and requests for the table are deleted with it.
func (h *Handler) DeleteTable(c *gin.Context) {
	number, ok := tableNumberParam(c)
	if !ok {
		return
	}

	if err := h.store.DeleteTable(c.Request.Context(), number); err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityTable, events.ActionDeleted, gin.H{"table_number": number})
	c.Status(http.StatusNoContent)
}

// ListTableSessions handles GET /api/tables/:number/sessions (staff only).
func (h *Handler) ListTableSessions(c *gin.Context) {
	number, ok := tableNumberParam(c)
	if !ok {
		return
	}

	sessions, err := h.store.ListSessions(c.Request.Context(), number)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
