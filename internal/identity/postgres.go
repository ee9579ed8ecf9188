package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

// PostgresResolver resolves API tokens against the api_tokens table, joining
// through the user account to the author profile. Inactive accounts and
// expired tokens resolve to nothing.
type PostgresResolver struct {
	pool *pgxpool.Pool
}

// NewPostgresResolver creates a new PostgresResolver.
func NewPostgresResolver(pool *pgxpool.Pool) *PostgresResolver {
	return &PostgresResolver{pool: pool}
}

// Resolve returns the profile behind a token, or domain.ErrUnauthenticated.
func (r *PostgresResolver) Resolve(ctx context.Context, token string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.user_id, p.username, p.bio, p.image, p.created_at, p.updated_at
		FROM api_tokens t
		JOIN users u ON u.id = t.user_id
		JOIN profiles p ON p.user_id = u.id
		WHERE t.token = $1
		  AND u.is_active
		  AND (t.expires_at IS NULL OR t.expires_at > NOW())
	`, token)

	var p domain.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Username, &p.Bio, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return &p, nil
}
