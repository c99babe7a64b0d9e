package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tableorder-backend/internal/auth"
	"tableorder-backend/internal/events"
	"tableorder-backend/internal/model"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup handles POST /api/auth/signup. Provisioning an identity creates
// exactly one profile row, with the role derived from the email domain,
// before the call returns.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process password"})
		return
	}

	profile := model.Profile{
		Email:        req.Email,
		Role:         auth.RoleForEmail(req.Email),
		PasswordHash: hash,
	}
	if err := h.store.CreateProfile(c.Request.Context(), &profile); err != nil {
		writeStoreError(c, err)
		return
	}

	token, err := h.tokens.Issue(&profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	h.publish(c, events.EntityProfile, events.ActionCreated, profile)
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.store.ProfileByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(profile.PasswordHash, req.Password) {
		// One message for both cases; do not leak which emails exist.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}
