package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/lumka-2025/queue-hero/internal/domain"
	"github.com/lumka-2025/queue-hero/internal/testutil"
)

func TestBookingRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewBookingRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("Create and list scoped to marketer", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		m1 := testutil.InsertUser(t, ctx, pool, "m1", domain.RoleMarketer)
		m2 := testutil.InsertUser(t, ctx, pool, "m2", domain.RoleMarketer)

		now := time.Now().UTC().Truncate(time.Microsecond)
		first, err := repo.Create(ctx, m1, "Campus fair", "Hall B", "Two tables", now)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := repo.Create(ctx, m1, "Demo day", "Hall C", "", now.Add(time.Second)); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := repo.Create(ctx, m2, "Other", "Elsewhere", "", now); err != nil {
			t.Fatalf("create: %v", err)
		}

		mine, err := repo.ListForMarketer(ctx, m1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(mine) != 2 {
			t.Fatalf("expected 2 bookings, got %d", len(mine))
		}
		// Newest first.
		if mine[1].ID != first.ID {
			t.Fatalf("unexpected order: %+v", mine)
		}
	})

	t.Run("malformed marketer id", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.Create(ctx, "not-a-uuid", "Campus fair", "Hall B", "", time.Now().UTC())
		if err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}
