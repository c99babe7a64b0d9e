package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/parse"
)

type sessionRequest struct {
	TableNumber int    `json:"table_number"`
	DeviceID    string `json:"device_id"`
	// CheckIn is the raw QR payload, an alternative to the explicit fields.
	CheckIn string `json:"checkin"`
}

func (r *sessionRequest) resolve() (int, string, error) {
	if r.CheckIn != "" {
		decoded, err := parse.ParseCheckIn(r.CheckIn)
		if err != nil {
			return 0, "", err
		}
		return decoded.TableNumber, decoded.DeviceID, nil
	}
	return r.TableNumber, r.DeviceID, nil
}

// RegisterSession handles POST /api/sessions (public). Registration is
// idempotent on the (table, device) pair; a device id is generated when
// absent.
func (h *Handler) RegisterSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tableNumber, deviceID, err := req.resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tableNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table_number is required"})
		return
	}
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	session, created, err := h.store.RegisterSession(c.Request.Context(), tableNumber, deviceID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	if created {
		h.publish(c, events.EntitySession, events.ActionCreated, session)
		c.JSON(http.StatusCreated, session)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CloseSession handles DELETE /api/sessions (public). Closing an absent
// session is a no-op success.
func (h *Handler) CloseSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tableNumber, deviceID, err := req.resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tableNumber <= 0 || deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table_number and device_id are required"})
		return
	}

	deleted, err := h.store.CloseSession(c.Request.Context(), tableNumber, deviceID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	if deleted {
		h.publish(c, events.EntitySession, events.ActionDeleted,
			gin.H{"table_number": tableNumber, "device_id": deviceID})
	}
	c.Status(http.StatusNoContent)
}
