package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cueu-api/auth/middleware"
	"cueu-api/club/models"
	"cueu-api/club/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService *services.NewsService
}

func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetNews lists published articles
// @Summary Get published news
// @Description Get published club news, newest first
// @Tags news
// @Produce json
// @Param limit query int false "Maximum number of articles (default: 20)" default(20)
// @Success 200 {array} models.News
// @Failure 500 {object} map[string]string
// @Router /news [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	news, err := h.newsService.GetPublished(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve news"})
		return
	}

	c.JSON(http.StatusOK, news)
}

// GetNewsBySlug retrieves a published article by slug
// @Summary Get a news article
// @Description Get a published news article by its slug
// @Tags news
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.News
// @Failure 404 {object} map[string]string
// @Router /news/{slug} [get]
func (h *NewsHandler) GetNewsBySlug(c *gin.Context) {
	article, err := h.newsService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateNews creates an article
// @Summary Create a news article
// @Description Create a news article (editor or admin)
// @Tags news
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param article body models.CreateNewsRequest true "Article data"
// @Success 201 {object} models.News
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /news [post]
func (h *NewsHandler) CreateNews(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.newsService.Create(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// UpdateNews updates an article
// @Summary Update a news article
// @Description Update a news article (editor or admin)
// @Tags news
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param article body models.UpdateNewsRequest true "Fields to update"
// @Success 200 {object} models.News
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /news/{id} [patch]
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req models.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.newsService.Update(uint(articleID), req)
	if err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// DeleteNews deletes an article
// @Summary Delete a news article
// @Description Delete a news article (admin only)
// @Tags news
// @Security BearerAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /news/{id} [delete]
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	if err := h.newsService.Delete(uint(articleID)); err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
