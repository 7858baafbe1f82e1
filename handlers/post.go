package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"inkpress/database"
	"inkpress/logger"
	"inkpress/models"
	"inkpress/storage"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	msgPublished     = "Blog Published Successfully!"
	msgUpdated       = "Blog Updated Successfully!"
	msgDeleted       = "Blog Deleted Successfully!"
	msgMissingFields = "Missing required fields (Title, Description, Category, or Author)"
	msgImageRequired = "Blog image file is required"
	msgIDRequired    = "Blog ID is required"
	msgNotFound      = "Blog not found"
)

// postForm is the multipart body of POST and PUT /api/blog. A field sent as
// plain text where a file is expected leaves the file nil.
type postForm struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Author        string
	AuthorImg     string
	Image         *multipart.FileHeader
	AuthorImgFile *multipart.FileHeader
}

func readPostForm(c *gin.Context) (*postForm, error) {
	if _, err := c.MultipartForm(); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return &postForm{
		ID:            c.PostForm("id"),
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Category:      c.PostForm("category"),
		Author:        c.PostForm("author"),
		AuthorImg:     c.PostForm("authorImg"),
		Image:         formFile(c, "image"),
		AuthorImgFile: formFile(c, "authorImgFile"),
	}, nil
}

func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

func (f *postForm) missingRequired() bool {
	return f.Title == "" || f.Description == "" || f.Category == "" || f.Author == ""
}

// ListBlogs never fails: a store error degrades to an empty list plus an
// advisory error field.
func (h *Handler) ListBlogs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("listing blogs, falling back to empty")
		c.JSON(http.StatusOK, gin.H{"blogs": []models.Post{}, "error": msgListFallback})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blogs": posts})
}

// CreateBlog uploads the thumbnail (and optional author picture) before
// inserting, so a failed upload never leaves a document behind.
func (h *Handler) CreateBlog(c *gin.Context) {
	form, err := readPostForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}
	if form.missingRequired() {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}
	if form.Image == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgImageRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := storage.Save(ctx, h.Media, storage.FolderBlogs, "", form.Image)
	if err != nil {
		h.upstreamError(c, "create blog", err)
		return
	}

	authorImg := form.AuthorImg
	if authorImg == "" {
		authorImg = models.DefaultAuthorImg
	}
	if form.AuthorImgFile != nil {
		authorImg, err = storage.Save(ctx, h.Media, storage.FolderAuthors, storage.AuthorPrefix, form.AuthorImgFile)
		if err != nil {
			h.upstreamError(c, "create blog", err)
			return
		}
	}

	post := &models.Post{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Author:      form.Author,
		AuthorImg:   authorImg,
		Image:       imageURL,
	}
	if err := h.Posts.Create(ctx, post); err != nil {
		h.upstreamError(c, "create blog", err)
		return
	}

	logger.Log.WithField("blog_id", post.ID.Hex()).Info("blog published")
	c.JSON(http.StatusOK, gin.H{"msg": msgPublished, "blog": post})
}

// UpdateBlog replaces the supplied text fields. Image and author picture
// change only when a new file is uploaded, except that a plain authorImg
// value is written as is.
func (h *Handler) UpdateBlog(c *gin.Context) {
	form, err := readPostForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}
	if form.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgIDRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if _, err := h.Posts.Get(ctx, form.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		h.upstreamError(c, "update blog", err)
		return
	}

	update := models.PostUpdate{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Author:      form.Author,
	}

	if form.Image != nil {
		update.Image, err = storage.Save(ctx, h.Media, storage.FolderBlogs, "", form.Image)
		if err != nil {
			h.upstreamError(c, "update blog", err)
			return
		}
	}

	if form.AuthorImgFile != nil {
		update.AuthorImg, err = storage.Save(ctx, h.Media, storage.FolderAuthors, storage.AuthorPrefix, form.AuthorImgFile)
		if err != nil {
			h.upstreamError(c, "update blog", err)
			return
		}
	} else if form.AuthorImg != "" {
		update.AuthorImg = form.AuthorImg
	}

	if err := h.Posts.Update(ctx, form.ID, update); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		h.upstreamError(c, "update blog", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": msgUpdated})
}

// DeleteBlog removes the document only; its media files stay in storage.
func (h *Handler) DeleteBlog(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgIDRequired})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Posts.Delete(ctx, id); err != nil {
		h.upstreamError(c, "delete blog", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": msgDeleted})
}
