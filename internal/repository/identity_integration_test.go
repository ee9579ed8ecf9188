package repository_test

// The token resolver runs against the same schema as the repositories, so
// its integration coverage shares the repository DB harness.

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/identity"
)

func TestPostgresResolver(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	resolver := identity.NewPostgresResolver(testDB.Pool)
	ctx := context.Background()

	seedToken := func(t *testing.T, userID, token string, expiresAt *time.Time) {
		t.Helper()
		_, err := testDB.Pool.Exec(ctx, `
			INSERT INTO api_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)
		`, token, userID, expiresAt)
		require.NoError(t, err)
	}

	t.Run("valid token resolves to the author profile", func(t *testing.T) {
		testDB.TruncateTables(t, "api_tokens", "profiles", "users")
		author := seedAuthor(t, testDB, "alice")
		seedToken(t, author.UserID, "alice-token", nil)

		p, err := resolver.Resolve(ctx, "alice-token")
		require.NoError(t, err)
		assert.Equal(t, author.ID, p.ID)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("unknown token is unauthenticated", func(t *testing.T) {
		testDB.TruncateTables(t, "api_tokens", "profiles", "users")

		_, err := resolver.Resolve(ctx, "ghost-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired token is unauthenticated", func(t *testing.T) {
		testDB.TruncateTables(t, "api_tokens", "profiles", "users")
		author := seedAuthor(t, testDB, "alice")
		expired := time.Now().Add(-time.Hour)
		seedToken(t, author.UserID, "stale-token", &expired)

		_, err := resolver.Resolve(ctx, "stale-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("inactive account is unauthenticated", func(t *testing.T) {
		testDB.TruncateTables(t, "api_tokens", "profiles", "users")
		author := seedAuthor(t, testDB, "alice")
		seedToken(t, author.UserID, "alice-token", nil)

		_, err := testDB.Pool.Exec(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, author.UserID)
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, "alice-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
