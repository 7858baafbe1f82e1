package handlers

import (
	"net/http"

	"inkpress/logger"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !h.Credentials.Check(req.Username, req.Password) {
		logger.Log.WithField("client_ip", c.ClientIP()).Warn("failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.Sessions.Issue(c.Writer); err != nil {
		logger.Log.WithError(err).Error("issuing session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout always succeeds, whatever state the cookie was in.
func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Clear(c.Writer)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
