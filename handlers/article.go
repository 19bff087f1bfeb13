package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"hormelys/models"
	"hormelys/services/article"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleHandler serves the blog endpoints.
type ArticleHandler struct {
	Svc article.Service
}

// NewArticleHandler creates a new ArticleHandler instance.
func NewArticleHandler(svc article.Service) *ArticleHandler {
	return &ArticleHandler{Svc: svc}
}

// saveUploadedImage stashes the optional multipart image in a temp file and
// returns its path, or "" when no image was sent.
func saveUploadedImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		return "", err
	}
	return tempFilePath, nil
}

// Create creates an article from a multipart form with an optional image.
// POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	imagePath, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload", "detail": err.Error()})
		return
	}
	if imagePath != "" {
		defer os.Remove(imagePath)
	}

	published, _ := strconv.ParseBool(c.PostForm("published"))
	a := &models.Article{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Content:     c.PostForm("content"),
		Category:    c.PostForm("category"),
		Published:   published,
	}
	if a.Title == "" || a.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	if err := h.Svc.Create(a, imagePath); err != nil {
		getLogger(c).Error("failed to create article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// GetAll returns every article.
// GET /api/articles
func (h *ArticleHandler) GetAll(c *gin.Context) {
	articles, err := h.Svc.GetAll()
	if err != nil {
		getLogger(c).Error("failed to list articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetByID returns one article and counts the view.
// GET /api/articles/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	a, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		getLogger(c).Error("failed to fetch article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve article"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update modifies an article, optionally replacing its image.
// PUT /api/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	imagePath, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload", "detail": err.Error()})
		return
	}
	if imagePath != "" {
		defer os.Remove(imagePath)
	}

	update := models.ArticleUpdate{}
	if v, ok := c.GetPostForm("title"); ok {
		update.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		update.Description = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		update.Content = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		update.Category = &v
	}
	if v, ok := c.GetPostForm("published"); ok {
		published, _ := strconv.ParseBool(v)
		update.Published = &published
	}

	a, err := h.Svc.Update(c.Param("id"), update, imagePath)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		getLogger(c).Error("failed to update article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update article"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// Unpublish hides an article from the public site.
// PUT /api/articles/:id/unpublish
func (h *ArticleHandler) Unpublish(c *gin.Context) {
	a, err := h.Svc.Unpublish(c.Param("id"))
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		getLogger(c).Error("failed to unpublish article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unpublish article"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete removes an article.
// DELETE /api/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		getLogger(c).Error("failed to delete article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
