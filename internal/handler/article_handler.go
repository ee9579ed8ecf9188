package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/logger"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/middleware"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/service"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/validator"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	articleService service.ArticleServiceInterface
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService service.ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// AuthorResponse is the nested author summary on article responses.
type AuthorResponse struct {
	Username string  `json:"username"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Body        string         `json:"body"`
	Author      AuthorResponse `json:"author"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// toArticleResponse converts a service.ArticleView to an ArticleResponse.
func toArticleResponse(v service.ArticleView) ArticleResponse {
	return ArticleResponse{
		Slug:        v.Article.Slug,
		Title:       v.Article.Title,
		Description: v.Article.Description,
		Body:        v.Article.Body,
		Author: AuthorResponse{
			Username: v.Author.Username,
			Bio:      v.Author.Bio,
			Image:    v.Author.Image,
		},
		CreatedAt: v.Article.CreatedAt.Format(TimeFormat),
		UpdatedAt: v.Article.UpdatedAt.Format(TimeFormat),
	}
}

// List handles GET /api/articles
func (h *ArticleHandler) List(c *gin.Context) {
	views, err := h.articleService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list articles",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list articles"})
		return
	}

	articles := make([]ArticleResponse, 0, len(views))
	for _, v := range views {
		articles = append(articles, toArticleResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	profile := middleware.GetProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	var input domain.ArticleCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}

	view, err := h.articleService.Create(c.Request.Context(), &input, profile)
	if err != nil {
		h.writeError(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(*view))
}

// Get handles GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	view, err := h.articleService.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, "get", err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*view))
}

// Update handles PATCH and PUT /api/articles/:slug. Both verbs apply a
// partial update: absent fields keep their stored values.
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch domain.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return
	}

	view, err := h.articleService.Update(c.Request.Context(), c.Param("slug"), patch, middleware.GetProfile(c))
	if err != nil {
		h.writeError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*view))
}

// Delete handles DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	err := h.articleService.Delete(c.Request.Context(), c.Param("slug"), middleware.GetProfile(c))
	if err != nil {
		h.writeError(c, "delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article has been deleted"})
}

// writeError translates the error taxonomy into HTTP responses: validation
// failures carry the field map, ownership failures carry the per-verb
// message, and anything unexpected collapses to a 500 without leaking
// internals.
func (h *ArticleHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validator.FieldErrors(err)})
	case errors.Is(err, domain.ErrDuplicateSlug):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"title": "an article with a similar title already exists",
		}})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "article not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "you can't " + op + " this article"})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
	default:
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Article operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
