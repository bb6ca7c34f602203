package infra_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/reuben-baek/todo-store/config"
	"github.com/reuben-baek/todo-store/data"
	"github.com/reuben-baek/todo-store/domain"
	"github.com/reuben-baek/todo-store/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []string{config.BackendGorm, config.BackendSQL, config.BackendMemory}

func openBackend(t *testing.T, backend string, dsn string) *infra.Backend {
	t.Helper()
	opened, err := infra.Open(context.Background(), config.Config{
		Backend:            backend,
		DSN:                dsn,
		LogLevel:           "debug",
		LogFormat:          "text",
		SlowQueryThreshold: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = opened.Close() })
	return opened
}

func openTempBackend(t *testing.T, backend string) *infra.Backend {
	return openBackend(t, backend, filepath.Join(t.TempDir(), "todo.db"))
}

func TestTodoStoreBackends(t *testing.T) {
	for _, backend := range backends {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()

			t.Run("buy milk scenario", func(t *testing.T) {
				store := openTempBackend(t, backend).Store

				created, err := store.Create(ctx, domain.TodoInput{Title: "buy milk"})
				require.NoError(t, err)
				assert.Equal(t, domain.Todo{ID: 1, Title: "buy milk"}, created)

				found, err := store.FindByID(ctx, 1)
				require.NoError(t, err)
				assert.Equal(t, created, found)

				updated, err := store.Update(ctx, 1, domain.TodoInput{Title: "buy bread"})
				require.NoError(t, err)
				assert.Equal(t, domain.Todo{ID: 1, Title: "buy bread"}, updated)

				require.NoError(t, store.Delete(ctx, 1))
				_, err = store.FindByID(ctx, 1)
				assert.ErrorIs(t, err, data.NotFoundError)

				exists, err := store.ExistsByID(ctx, 1)
				require.NoError(t, err)
				assert.False(t, exists)

				assert.ErrorIs(t, store.Delete(ctx, 1), data.NotFoundError)
			})

			t.Run("unknown ids", func(t *testing.T) {
				store := openTempBackend(t, backend).Store
				_, err := store.FindByID(ctx, 99)
				assert.ErrorIs(t, err, data.NotFoundError)
				_, err = store.Update(ctx, 99, domain.TodoInput{Title: "nope"})
				assert.ErrorIs(t, err, data.NotFoundError)
				assert.ErrorIs(t, store.Delete(ctx, 99), data.NotFoundError)

				exists, err := store.ExistsByID(ctx, 99)
				require.NoError(t, err)
				assert.False(t, exists)

				all, err := store.FindAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, all)
			})

			t.Run("find all returns every record", func(t *testing.T) {
				store := openTempBackend(t, backend).Store
				var want []domain.Todo
				for _, title := range []string{"one", "two", "three"} {
					created, err := store.Create(ctx, domain.TodoInput{Title: title, Completed: title == "two"})
					require.NoError(t, err)
					want = append(want, created)
				}
				assert.Equal(t, []uint{1, 2, 3}, []uint{want[0].ID, want[1].ID, want[2].ID})

				all, err := store.FindAll(ctx)
				require.NoError(t, err)
				assert.ElementsMatch(t, want, all)
			})

			t.Run("ids are not reused", func(t *testing.T) {
				store := openTempBackend(t, backend).Store
				first, err := store.Create(ctx, domain.TodoInput{Title: "first"})
				require.NoError(t, err)
				require.NoError(t, store.Delete(ctx, first.ID))

				second, err := store.Create(ctx, domain.TodoInput{Title: "second"})
				require.NoError(t, err)
				assert.Greater(t, second.ID, first.ID)
			})

			t.Run("validation happens before storage", func(t *testing.T) {
				store := openTempBackend(t, backend).Store
				_, err := store.Create(ctx, domain.TodoInput{Title: ""})
				assert.ErrorIs(t, err, data.ErrValidation)

				all, err := store.FindAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, all)
			})

			t.Run("concurrent writers", func(t *testing.T) {
				store := openTempBackend(t, backend).Store
				created, err := store.Create(ctx, domain.TodoInput{Title: "initial"})
				require.NoError(t, err)

				titles := []string{"a", "b", "c", "d"}
				var wg sync.WaitGroup
				for _, title := range titles {
					wg.Add(2)
					go func(title string) {
						defer wg.Done()
						_, err := store.Update(ctx, created.ID, domain.TodoInput{Title: title, Completed: title == "c"})
						assert.NoError(t, err)
					}(title)
					go func(title string) {
						defer wg.Done()
						_, err := store.Create(ctx, domain.TodoInput{Title: title})
						assert.NoError(t, err)
					}(title)
				}
				wg.Wait()

				found, err := store.FindByID(ctx, created.ID)
				require.NoError(t, err)
				assert.Contains(t, titles, found.Title)
				assert.Equal(t, found.Title == "c", found.Completed)

				all, err := store.FindAll(ctx)
				require.NoError(t, err)
				assert.Len(t, all, len(titles)+1)
			})
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("data survives reopen", func(t *testing.T) {
		for _, backend := range []string{config.BackendGorm, config.BackendSQL} {
			dsn := filepath.Join(t.TempDir(), "todo.db")
			first := openBackend(t, backend, dsn)
			created, err := first.Store.Create(context.Background(), domain.TodoInput{Title: "persist me"})
			require.NoError(t, err)
			require.NoError(t, first.Close())

			second := openBackend(t, backend, dsn)
			found, err := second.Store.FindByID(context.Background(), created.ID)
			require.NoError(t, err, backend)
			assert.Equal(t, created, found, backend)
		}
	})
	t.Run("gorm and sql share the schema", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "todo.db")
		gormBackend := openBackend(t, config.BackendGorm, dsn)
		created, err := gormBackend.Store.Create(context.Background(), domain.TodoInput{Title: "shared", Completed: true})
		require.NoError(t, err)
		require.NoError(t, gormBackend.Close())

		sqlBackend := openBackend(t, config.BackendSQL, dsn)
		found, err := sqlBackend.Store.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})
	t.Run("in-memory dsn", func(t *testing.T) {
		for _, backend := range []string{config.BackendGorm, config.BackendSQL} {
			store := openBackend(t, backend, ":memory:").Store
			created, err := store.Create(context.Background(), domain.TodoInput{Title: "volatile"})
			require.NoError(t, err, backend)
			exists, err := store.ExistsByID(context.Background(), created.ID)
			require.NoError(t, err, backend)
			assert.True(t, exists, backend)
		}
	})
	t.Run("unknown backend", func(t *testing.T) {
		_, err := infra.Open(context.Background(), config.Config{Backend: "postgres"})
		assert.Error(t, err)
	})
	t.Run("close twice", func(t *testing.T) {
		backend := openTempBackend(t, config.BackendSQL)
		assert.NoError(t, backend.Close())
		assert.NoError(t, backend.Close())
	})
	t.Run("closed backend reports storage errors", func(t *testing.T) {
		backend := openTempBackend(t, config.BackendSQL)
		require.NoError(t, backend.Close())
		_, err := backend.Store.FindAll(context.Background())
		assert.ErrorIs(t, err, data.ErrStorage)
	})
}
