package handlers

import (
	"net/http"

	"inkpress/authoring"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ComposeRequest is either a tag insertion (Tag with Start/End) or an image
// insertion (URLs at Cursor).
type ComposeRequest struct {
	Text   string   `json:"text"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Tag    string   `json:"tag"`
	Cursor int      `json:"cursor"`
	URLs   []string `json:"urls"`
}

func (h *Handler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.URLs) > 0 {
		text, cursor := authoring.InsertImages(req.Text, req.Cursor, req.URLs)
		c.JSON(http.StatusOK, gin.H{"text": text, "cursor": cursor})
		return
	}

	text, cursor, err := authoring.InsertTag(req.Text, req.Start, req.End, authoring.Tag(req.Tag))
	if errors.Is(err, authoring.ErrUnknownTag) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text, "cursor": cursor})
}
