package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const uriPrefixLen = 15

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Error", "message": err.Error()})
		return
	}

	prefix := h.MongoURI
	if len(prefix) > uriPrefixLen {
		prefix = prefix[:uriPrefixLen]
	}
	c.JSON(http.StatusOK, gin.H{"status": "Connected", "uri_prefix": prefix})
}
