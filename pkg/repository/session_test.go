package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/repository/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func runSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T, clock *fakeClock) interfaces.SessionRepository[string]) {
	t.Helper()

	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("Get returns nil for unknown session", func(t *testing.T) {
		repo := newRepo(t, &fakeClock{now: start})
		got, err := repo.Get(context.Background(), model.NewSessionID())
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("Put then Get returns the state", func(t *testing.T) {
		repo := newRepo(t, &fakeClock{now: start})
		ctx := context.Background()

		session := model.NewSession("dashboard", start)
		gt.NoError(t, repo.Put(ctx, session)).Required()

		got, err := repo.Get(ctx, session.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil().Required()
		gt.V(t, got.State).Equal("dashboard")
		gt.V(t, got.ID).Equal(session.ID)
	})

	t.Run("Put rejects empty ID", func(t *testing.T) {
		repo := newRepo(t, &fakeClock{now: start})
		gt.Error(t, repo.Put(context.Background(), &model.Session[string]{}))
	})

	t.Run("Get refreshes access time", func(t *testing.T) {
		clock := &fakeClock{now: start}
		repo := newRepo(t, clock)
		ctx := context.Background()

		session := model.NewSession("dashboard", start)
		gt.NoError(t, repo.Put(ctx, session)).Required()

		clock.now = start.Add(20 * time.Minute)
		got, err := repo.Get(ctx, session.ID)
		gt.NoError(t, err).Required()
		gt.V(t, got.AccessedAt).Equal(clock.now)

		removed, err := repo.DeleteIdle(ctx, start.Add(10*time.Minute))
		gt.NoError(t, err)
		gt.V(t, removed).Equal(0)
	})

	t.Run("DeleteIdle removes only idle sessions", func(t *testing.T) {
		repo := newRepo(t, &fakeClock{now: start})
		ctx := context.Background()

		idle := model.NewSession("idle", start)
		active := model.NewSession("active", start.Add(time.Hour))
		gt.NoError(t, repo.Put(ctx, idle)).Required()
		gt.NoError(t, repo.Put(ctx, active)).Required()

		removed, err := repo.DeleteIdle(ctx, start.Add(30*time.Minute))
		gt.NoError(t, err)
		gt.V(t, removed).Equal(1)

		count, err := repo.Count(ctx)
		gt.NoError(t, err)
		gt.V(t, count).Equal(1)

		got, err := repo.Get(ctx, active.ID)
		gt.NoError(t, err)
		gt.Value(t, got).NotNil()
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		repo := newRepo(t, &fakeClock{now: start})
		ctx := context.Background()

		session := model.NewSession("dashboard", start)
		gt.NoError(t, repo.Put(ctx, session)).Required()
		gt.NoError(t, repo.Delete(ctx, session.ID))
		gt.NoError(t, repo.Delete(ctx, session.ID))

		count, err := repo.Count(ctx)
		gt.NoError(t, err)
		gt.V(t, count).Equal(0)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	runSessionRepositoryTest(t, func(t *testing.T, clock *fakeClock) interfaces.SessionRepository[string] {
		return memory.NewSessionRepository(memory.WithClock[string](clock.Now))
	})
}
