package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// MemoryArticleRepository is an in-memory ArticleRepository. It backs tests
// and satisfies the same contract as the Postgres implementation, including
// slug uniqueness and the error taxonomy.
type MemoryArticleRepository struct {
	mu       sync.RWMutex
	articles map[string]domain.Article
}

// NewMemoryArticleRepository creates an empty in-memory article store.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{articles: make(map[string]domain.Article)}
}

// Create stores a new article. The mutex serializes racing creates so a
// colliding slug surfaces as domain.ErrDuplicateSlug, never an overwrite.
func (r *MemoryArticleRepository) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.articles[article.Slug]; exists {
		return domain.ErrDuplicateSlug
	}

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	r.articles[article.Slug] = *article
	return nil
}

// GetBySlug returns a copy of the stored article.
func (r *MemoryArticleRepository) GetBySlug(_ context.Context, slug string) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns all articles, newest first.
func (r *MemoryArticleRepository) List(_ context.Context) ([]domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	articles := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

// Update replaces the editable fields of a stored article.
func (r *MemoryArticleRepository) Update(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.articles[article.Slug]
	if !ok {
		return domain.ErrNotFound
	}

	stored.Title = article.Title
	stored.Description = article.Description
	stored.Body = article.Body
	stored.UpdatedAt = time.Now()
	r.articles[article.Slug] = stored
	*article = stored
	return nil
}

// Delete removes an article by slug.
func (r *MemoryArticleRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[slug]; !ok {
		return domain.ErrNotFound
	}
	delete(r.articles, slug)
	return nil
}

// MemoryProfileRepository is an in-memory ProfileRepository for tests.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

// NewMemoryProfileRepository creates an in-memory profile store.
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]domain.Profile)}
}

// Add stores a profile keyed by its ID.
func (r *MemoryProfileRepository) Add(p domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// GetByID returns the profile with the given ID.
func (r *MemoryProfileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// GetByUserID returns the profile linked to a user account.
func (r *MemoryProfileRepository) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}
