package service

import (
	"context"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// ArticleView pairs an article with its author's profile for rendering.
type ArticleView struct {
	Article domain.Article
	Author  domain.Profile
}

// ArticleServiceInterface defines the article lifecycle operations.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	// List returns all articles with their authors. No authentication needed.
	List(ctx context.Context) ([]ArticleView, error)
	// Get returns a single article by slug, or domain.ErrNotFound.
	Get(ctx context.Context, slug string) (*ArticleView, error)
	// Create validates the payload, derives a slug, and persists a new
	// article owned by the given author.
	Create(ctx context.Context, input *domain.ArticleCreate, author *domain.Profile) (*ArticleView, error)
	// Update applies a partial update to the article if the requester is its
	// author. Returns domain.ErrForbidden otherwise, with no store change.
	Update(ctx context.Context, slug string, patch domain.ArticlePatch, requester *domain.Profile) (*ArticleView, error)
	// Delete removes the article if the requester is its author. Returns
	// domain.ErrForbidden otherwise, with no store change.
	Delete(ctx context.Context, slug string, requester *domain.Profile) error
}
