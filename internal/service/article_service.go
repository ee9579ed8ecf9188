package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/logger"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/metrics"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/repository"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/slug"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/validator"
)

// maxSlugAttempts bounds retries when the derived slug is already taken.
// Attempt 1 is the bare slug; later attempts carry a random suffix.
const maxSlugAttempts = 3

// ArticleService implements the article lifecycle over an article store and
// a profile store. Ownership is checked through domain.CanMutate before any
// mutation reaches the store.
type ArticleService struct {
	articles repository.ArticleRepository
	profiles repository.ProfileRepository
	v        *validator.Validator
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articles repository.ArticleRepository,
	profiles repository.ProfileRepository,
	v *validator.Validator,
) *ArticleService {
	return &ArticleService{
		articles: articles,
		profiles: profiles,
		v:        v,
	}
}

// List returns all articles with their author profiles.
func (s *ArticleService) List(ctx context.Context) ([]ArticleView, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		metrics.ObserveArticleOperation("list", metrics.OutcomeError)
		return nil, fmt.Errorf("list articles: %w", err)
	}

	views := make([]ArticleView, 0, len(articles))
	authors := map[string]domain.Profile{}
	for _, a := range articles {
		author, ok := authors[a.AuthorID]
		if !ok {
			p, err := s.profiles.GetByID(ctx, a.AuthorID)
			if err != nil {
				metrics.ObserveArticleOperation("list", metrics.OutcomeError)
				return nil, fmt.Errorf("resolve author for %s: %w", a.Slug, err)
			}
			author = *p
			authors[a.AuthorID] = author
		}
		views = append(views, ArticleView{Article: a, Author: author})
	}

	metrics.ObserveArticleOperation("list", metrics.OutcomeSuccess)
	return views, nil
}

// Get returns the article for a slug together with its author.
func (s *ArticleService) Get(ctx context.Context, articleSlug string) (*ArticleView, error) {
	a, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveArticleOperation("get", metrics.OutcomeNotFound)
			return nil, err
		}
		metrics.ObserveArticleOperation("get", metrics.OutcomeError)
		return nil, fmt.Errorf("get article: %w", err)
	}

	author, err := s.profiles.GetByID(ctx, a.AuthorID)
	if err != nil {
		metrics.ObserveArticleOperation("get", metrics.OutcomeError)
		return nil, fmt.Errorf("resolve author for %s: %w", a.Slug, err)
	}

	metrics.ObserveArticleOperation("get", metrics.OutcomeSuccess)
	return &ArticleView{Article: *a, Author: *author}, nil
}

// Create validates the payload and persists a new article authored by the
// caller's profile. The author is never taken from client input. The slug is
// derived from the title; when the store rejects it as taken, creation
// retries with a suffixed slug, leaving the unique index as the arbiter for
// races.
func (s *ArticleService) Create(ctx context.Context, input *domain.ArticleCreate, author *domain.Profile) (*ArticleView, error) {
	if author == nil {
		metrics.ObserveArticleOperation("create", metrics.OutcomeForbidden)
		return nil, domain.ErrUnauthenticated
	}

	if err := s.v.ValidateCreate(input); err != nil {
		metrics.ObserveArticleOperation("create", metrics.OutcomeInvalid)
		return nil, err
	}

	base := slug.Make(input.Title)
	if base == "" {
		// Title had no slug-safe characters at all.
		base = slug.WithSuffix("article")
	}

	article := &domain.Article{
		ID:          uuid.New().String(),
		Slug:        base,
		Title:       input.Title,
		Description: &input.Description,
		Body:        input.Body,
		AuthorID:    author.ID,
	}

	for attempt := 1; ; attempt++ {
		err := s.articles.Create(ctx, article)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateSlug) {
			metrics.ObserveArticleOperation("create", metrics.OutcomeError)
			return nil, fmt.Errorf("create article: %w", err)
		}
		if attempt >= maxSlugAttempts {
			metrics.ObserveArticleOperation("create", metrics.OutcomeInvalid)
			return nil, domain.ErrDuplicateSlug
		}
		metrics.SlugCollisionsTotal.Inc()
		logger.WithSlug(article.Slug).Info("Slug taken, retrying with suffix")
		article.Slug = slug.WithSuffix(base)
	}

	metrics.ObserveArticleOperation("create", metrics.OutcomeSuccess)
	return &ArticleView{Article: *article, Author: *author}, nil
}

// Update applies a partial update. The ownership check runs before any field
// is touched so a denied request causes no side effect.
func (s *ArticleService) Update(ctx context.Context, articleSlug string, patch domain.ArticlePatch, requester *domain.Profile) (*ArticleView, error) {
	if requester == nil {
		metrics.ObserveArticleOperation("update", metrics.OutcomeForbidden)
		return nil, domain.ErrUnauthenticated
	}

	a, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveArticleOperation("update", metrics.OutcomeNotFound)
			return nil, err
		}
		metrics.ObserveArticleOperation("update", metrics.OutcomeError)
		return nil, fmt.Errorf("get article: %w", err)
	}

	if !domain.CanMutate(a, requester) {
		metrics.ObserveArticleOperation("update", metrics.OutcomeForbidden)
		return nil, domain.ErrForbidden
	}

	if err := s.v.ValidatePatch(&patch); err != nil {
		metrics.ObserveArticleOperation("update", metrics.OutcomeInvalid)
		return nil, err
	}

	patch.Apply(a)
	if err := s.articles.Update(ctx, a); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveArticleOperation("update", metrics.OutcomeNotFound)
			return nil, err
		}
		metrics.ObserveArticleOperation("update", metrics.OutcomeError)
		return nil, fmt.Errorf("update article: %w", err)
	}

	metrics.ObserveArticleOperation("update", metrics.OutcomeSuccess)
	return &ArticleView{Article: *a, Author: *requester}, nil
}

// Delete removes an article after the ownership check. Removal is hard; a
// repeated delete of the same slug reports domain.ErrNotFound.
func (s *ArticleService) Delete(ctx context.Context, articleSlug string, requester *domain.Profile) error {
	if requester == nil {
		metrics.ObserveArticleOperation("delete", metrics.OutcomeForbidden)
		return domain.ErrUnauthenticated
	}

	a, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveArticleOperation("delete", metrics.OutcomeNotFound)
			return err
		}
		metrics.ObserveArticleOperation("delete", metrics.OutcomeError)
		return fmt.Errorf("get article: %w", err)
	}

	if !domain.CanMutate(a, requester) {
		metrics.ObserveArticleOperation("delete", metrics.OutcomeForbidden)
		return domain.ErrForbidden
	}

	if err := s.articles.Delete(ctx, a.Slug); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveArticleOperation("delete", metrics.OutcomeNotFound)
			return err
		}
		metrics.ObserveArticleOperation("delete", metrics.OutcomeError)
		return fmt.Errorf("delete article: %w", err)
	}

	metrics.ObserveArticleOperation("delete", metrics.OutcomeSuccess)
	return nil
}

// IsValidationError reports whether err is a field validation failure whose
// field map should be returned to the client.
func IsValidationError(err error) bool {
	var ve validation.Errors
	return errors.As(err, &ve)
}
