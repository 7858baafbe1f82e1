package handlers

import (
	"context"
	"net/http"
	"time"

	"inkpress/authoring"
	"inkpress/logger"
	"inkpress/models"
	"inkpress/reader"

	"github.com/gin-gonic/gin"
)

// allPosts fetches the full list for the reader pages. A store failure shows
// as "no posts", never as an error page.
func (h *Handler) allPosts(c *gin.Context) []models.Post {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("listing blogs for page, showing none")
		return nil
	}
	return posts
}

func (h *Handler) Home(c *gin.Context) {
	menu := c.DefaultQuery("menu", reader.AllCategories)

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Posts":    reader.FilterByCategory(h.allPosts(c), menu),
		"Menu":     reader.Menu(),
		"Selected": menu,
	})
}

// BlogDetail resolves the post by scanning the full list.
func (h *Handler) BlogDetail(c *gin.Context) {
	post, ok := reader.FindByID(h.allPosts(c), c.Param("id"))
	if !ok {
		h.render(c, http.StatusNotFound, "notfound.html", nil)
		return
	}
	h.render(c, http.StatusOK, "blog.html", gin.H{"Post": post})
}

func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", nil)
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) AdminPage(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	h.render(c, http.StatusOK, "admin.html", gin.H{
		"Tags":             authoring.Tags,
		"Categories":       models.Categories,
		"DefaultAuthor":    h.DefaultAuthor,
		"DefaultAuthorImg": models.DefaultAuthorImg,
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "notfound.html", nil)
}
