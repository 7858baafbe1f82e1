package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"inkpress/auth"
	"inkpress/logger"
	"inkpress/models"
	"inkpress/storage"
	"inkpress/views"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// PostStore is the persistence the handlers need. database.PostRepository
// implements it.
type PostStore interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, update models.PostUpdate) error
	Delete(ctx context.Context, id string) error
}

// Pinger checks store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires a Handler.
type Deps struct {
	Posts       PostStore
	Media       storage.Store
	Credentials *auth.Credentials
	Sessions    *auth.Sessions
	DB          Pinger
	MongoURI    string
	Views       *views.Renderer
	// DefaultAuthor prefills the authoring form.
	DefaultAuthor string
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

const (
	msgDBConnection  = "Database Connection Failed. Check your internet or MongoDB URI."
	msgListFallback  = "Database connection failed - falling back to static data"
	msgUploadFailure = "Image upload failed: "
)

// connectivityHints are substrings of driver errors caused by DNS failures
// or timeouts.
var connectivityHints = []string{
	"ENOTFOUND",
	"no such host",
	"timeout",
	"deadline exceeded",
	"server selection error",
	"MONGODB_URI is not defined",
}

// upstreamMessage turns a store error into the hint shown to the admin.
func upstreamMessage(err error) string {
	msg := err.Error()
	for _, hint := range connectivityHints {
		if strings.Contains(msg, hint) {
			return msgDBConnection
		}
	}
	return "Server Error: " + msg
}

// upstreamError answers 500 for a failed dependency. Upload failures keep
// their own message so the admin can tell them apart from store failures.
func (h *Handler) upstreamError(c *gin.Context, op string, err error) {
	logger.Log.WithError(err).WithField("op", op).Error("request failed")

	var uploadErr *storage.UploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUploadFailure + uploadErr.Err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": upstreamMessage(err)})
}

func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	var buf bytes.Buffer
	if err := h.Views.Render(&buf, page, data); err != nil {
		logger.Log.WithError(err).WithField("page", page).Error("rendering page")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
