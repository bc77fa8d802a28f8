//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTx runs fn inside a rolled-back transaction on the migrated test database.
func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()

	db := testdb.OpenPostgres(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		fn(tx)
	})
}

func TestPostgresUserStore(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		ctx := context.Background()

		user, err := domain.NewUser("Alice", "a@x.io", "hash")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, user))

		byEmail, err := users.GetByEmail(ctx, "A@x.io")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.HashedPassword)

		user.Name = "Alicia"
		user.Bio = "bio"
		require.NoError(t, users.UpdateProfile(ctx, user))

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", byID.Name)
		assert.Equal(t, "bio", byID.Bio)

		_, err = users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		ghost := &domain.User{ID: uuid.New(), Name: "x"}
		assert.ErrorIs(t, users.UpdateProfile(ctx, ghost), store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_DuplicateEmail(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		ctx := context.Background()

		first, err := domain.NewUser("Alice", "a@x.io", "hash")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, first))

		second, err := domain.NewUser("Bob", "a@x.io", "hash")
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, second), store.ErrEmailExists)
	})
}

func TestPostgresTaskStore(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		ctx := context.Background()

		alice, err := domain.NewUser("Alice", "a@x.io", "hash")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, alice))
		bob, err := domain.NewUser("Bob", "b@x.io", "hash")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, bob))

		older, err := domain.NewTask(alice.ID, "older", nil, "", "", nil)
		require.NoError(t, err)
		older.CreatedAt = older.CreatedAt.Add(-time.Hour)
		desc := "2 litres"
		due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		newer, err := domain.NewTask(alice.ID, "newer", &desc, domain.TaskStatusInProgress, domain.TaskPriorityHigh, &due)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, older))
		require.NoError(t, tasks.Create(ctx, newer))

		list, err := tasks.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "newer", list[0].Title)
		require.NotNil(t, list[0].Description)
		assert.Equal(t, "2 litres", *list[0].Description)
		assert.Nil(t, list[1].DueDate)

		empty, err := tasks.ListByUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		_, err = tasks.GetForUser(ctx, newer.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.DeleteForUser(ctx, newer.ID, bob.ID), store.ErrTaskNotFound)

		stolen := *newer
		stolen.UserID = bob.ID
		assert.ErrorIs(t, tasks.Update(ctx, &stolen), store.ErrTaskNotFound)

		newer.Description = nil
		newer.DueDate = nil
		newer.Status = domain.TaskStatusCompleted
		require.NoError(t, tasks.Update(ctx, newer))

		got, err := tasks.GetForUser(ctx, newer.ID, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.DueDate)
		assert.Equal(t, domain.TaskStatusCompleted, got.Status)

		require.NoError(t, tasks.DeleteForUser(ctx, newer.ID, alice.ID))
		_, err = tasks.GetForUser(ctx, newer.ID, alice.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
