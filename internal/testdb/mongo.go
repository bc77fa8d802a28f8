package testdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/platform/mongo"
	"github.com/stretchr/testify/require"
)

// NewMongoConnection connects to a freshly named database that is dropped
// when the test finishes.
func NewMongoConnection(t *testing.T) *mongo.Connection {
	t.Helper()

	uri := requireEnv(t, EnvMongoURL)
	dbName := "taskboard_test_" + uuid.NewString()[:8]

	conn := mongo.NewConnection(uri, dbName, TestTimeout, Logger())

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, conn.Ping(ctx), "test mongo server unreachable")

	t.Cleanup(func() {
		ctx := context.Background()
		if db, err := conn.Database(ctx); err == nil {
			if err := db.Drop(ctx); err != nil {
				t.Logf("failed to drop test database %s: %v", dbName, err)
			}
		}
		if err := conn.Close(ctx); err != nil {
			t.Logf("failed to close mongo connection: %v", err)
		}
	})
	return conn
}
