package handlers

import (
	"context"
	"net/http"
	"time"

	"inkpress/logger"
	"inkpress/storage"

	"github.com/gin-gonic/gin"
)

// UploadImage stores one body image for the editor and returns its URL.
func (h *Handler) UploadImage(c *gin.Context) {
	image, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	url, err := storage.Save(ctx, h.Media, storage.FolderDescription, "", image)
	if err != nil {
		logger.Log.WithError(err).Error("upload error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error during upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "Image uploaded successfully!",
		"url": url,
	})
}
