package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/model"
	"tableorder-backend/internal/store"
)

type menuItemRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"image_url"`
	IsAvailable     *bool           `json:"is_available"`
}

// CreateMenuItem handles POST /api/menu (staff only).
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.MenuItem{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := h.store.CreateMenuItem(c.Request.Context(), &item); err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityMenuItem, events.ActionCreated, item)
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/menu/:id (staff only). Updates overwrite
// in place.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prep := req.PrepTimeMinutes
	if prep == 0 {
		prep = 15
	}
	item, err := h.store.UpdateMenuItem(c.Request.Context(), uint(id), store.MenuItemUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		PrepTimeMinutes: prep,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable == nil || *req.IsAvailable,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityMenuItem, events.ActionUpdated, item)
	c.JSON(http.StatusOK, item)
}

// ListMenu handles GET /api/menu (public, cached). Filters: available,
// category.
func (h *Handler) ListMenu(c *gin.Context) {
	var f store.MenuFilter
	if v := c.Query("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'available' filter"})
			return
		}
		f.Available = &available
	}
	f.Category = c.Query("category")

	items, err := h.store.ListMenuItems(c.Request.Context(), f)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
