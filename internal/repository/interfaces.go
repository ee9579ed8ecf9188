package repository

import (
	"context"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// ArticleRepository defines methods for article data access. Articles are
// addressed by slug; the store enforces slug uniqueness and reports a
// violation as domain.ErrDuplicateSlug.
type ArticleRepository interface {
	// Create persists a new article. Returns domain.ErrDuplicateSlug when the
	// slug is already taken.
	Create(ctx context.Context, article *domain.Article) error
	// GetBySlug returns the article for a slug, or domain.ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	// List returns all articles, newest first.
	List(ctx context.Context) ([]domain.Article, error)
	// Update persists the article's editable fields. Returns
	// domain.ErrNotFound when the article no longer exists.
	Update(ctx context.Context, article *domain.Article) error
	// Delete removes the article for a slug. Returns domain.ErrNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, slug string) error
}

// ProfileRepository defines methods for author profile access.
type ProfileRepository interface {
	// GetByID returns the profile with the given ID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// GetByUserID returns the profile linked to a user account, or
	// domain.ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}
