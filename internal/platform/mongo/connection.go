package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/taskboard-api/internal/redact"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// ErrClosed is returned by Database after Close.
var ErrClosed = errors.New("mongo connection closed")

// Connection is a lazily established handle to one MongoDB database.
// The first Database call connects, pings, and creates indexes; later calls
// reuse the client. A failed attempt is retried on the next call.
type Connection struct {
	uri            string
	dbName         string
	connectTimeout time.Duration
	logger         *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	closed bool
}

// NewConnection creates a handle for the database dbName at uri.
// No network I/O happens until the first call to Database.
func NewConnection(uri, dbName string, connectTimeout time.Duration, logger *slog.Logger) *Connection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connection{
		uri:            uri,
		dbName:         dbName,
		connectTimeout: connectTimeout,
		logger:         logger.With("component", "mongo_connection"),
	}
}

// Database returns the connected database, connecting first if needed.
func (c *Connection) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.db != nil {
		return c.db, nil
	}

	connectCtx := ctx
	if c.connectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, c.connectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		c.logger.Error("failed to connect to mongodb", "error", redact.Error(err))
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		c.logger.Error("failed to ping mongodb", "error", redact.Error(err))
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(c.dbName)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		c.logger.Error("failed to create mongodb indexes", "error", redact.Error(err))
		return nil, err
	}

	c.client = client
	c.db = db
	c.logger.Info("connected to mongodb", "database", c.dbName)
	return c.db, nil
}

// Ping connects if needed and checks the server is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, nil)
}

// Close disconnects the client. It is safe to call more than once.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	if err != nil {
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("tasks_user_created"),
	})
	if err != nil {
		return fmt.Errorf("create tasks owner index: %w", err)
	}
	return nil
}
