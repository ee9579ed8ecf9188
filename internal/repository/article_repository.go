package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

const articleColumns = `id, slug, title, description, body, author_id, created_at, updated_at`

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article. The database's unique index on slug is the
// arbiter for concurrent creates with colliding slugs; the loser sees
// domain.ErrDuplicateSlug.
func (r *PostgresArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (id, slug, title, description, body, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+articleColumns,
		article.ID, article.Slug, article.Title, article.Description, article.Body, article.AuthorID)

	created, err := scanArticle(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("insert article: %w", err)
	}

	*article = *created
	return nil
}

// GetBySlug returns the article for a slug.
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE slug = $1
	`, slug)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	return a, nil
}

// List returns all articles, newest first.
func (r *PostgresArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// Update persists the editable fields of an existing article. Slug and author
// are deliberately absent from the SET list.
func (r *PostgresArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE articles
		SET title = $2, description = $3, body = $4, updated_at = NOW()
		WHERE slug = $1
		RETURNING `+articleColumns,
		article.Slug, article.Title, article.Description, article.Body)

	updated, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}

	*article = *updated
	return nil
}

// Delete removes an article. Deletion is a hard removal; a second delete of
// the same slug reports domain.ErrNotFound.
func (r *PostgresArticleRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
