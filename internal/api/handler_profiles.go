package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tableorder-backend/internal/events"
	"tableorder-backend/internal/mw"
	"tableorder-backend/internal/store"
)

func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(mw.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user id not found"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}

// GetMyProfile handles GET /api/profiles/me.
func (h *Handler) GetMyProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := h.store.ProfileByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateMyProfile handles PUT /api/profiles/me. Self-update only; the role
// is never changed this way.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.store.UpdateProfile(c.Request.Context(), id, store.ProfileUpdate{Email: req.Email})
	if err != nil {
		writeStoreError(c, err)
		return
	}

	h.publish(c, events.EntityProfile, events.ActionUpdated, profile)
	c.JSON(http.StatusOK, profile)
}

// ListProfiles handles GET /api/profiles. Any authenticated identity may
// read all profiles; roles are not confidential among staff.
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.store.ListProfiles(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}
