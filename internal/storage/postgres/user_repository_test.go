package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewUserRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("Create then FindByUsername", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC().Truncate(time.Microsecond)
		created, err := repo.Create(ctx, "sam", "hash", domain.RoleAgent, now)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == "" || created.Role != domain.RoleAgent {
			t.Fatalf("unexpected user: %+v", created)
		}

		found, err := repo.FindByUsername(ctx, "sam")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found == nil || found.ID != created.ID || found.PasswordHash != "hash" {
			t.Fatalf("unexpected lookup result: %+v", found)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		now := time.Now().UTC()
		if _, err := repo.Create(ctx, "sam", "hash", domain.RoleCustomer, now); err != nil {
			t.Fatalf("create: %v", err)
		}
		_, err := repo.Create(ctx, "sam", "other", domain.RoleAgent, now)
		if err != domain.ErrUserExists {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	t.Run("missing username yields nil without error", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		found, err := repo.FindByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil, got %+v", found)
		}
	})
}
