package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MongoTaskStore implements store.TaskStore on the tasks collection.
type MongoTaskStore struct {
	conn   *Connection
	logger *slog.Logger
}

// NewMongoTaskStore creates a task store backed by conn.
func NewMongoTaskStore(conn *Connection, logger *slog.Logger) *MongoTaskStore {
	if conn == nil {
		// ALLOW-PANIC: constructor misuse
		panic("conn cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoTaskStore{
		conn:   conn,
		logger: logger.With(slog.String("component", "mongo_task_store")),
	}
}

var _ store.TaskStore = (*MongoTaskStore)(nil)

func (s *MongoTaskStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(tasksCollection), nil
}

func ownedFilter(id, userID uuid.UUID) bson.M {
	return bson.M{"_id": id.String(), "user_id": userID.String()}
}

// Create implements store.TaskStore.Create
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return store.NewStoreError("task", "create", "database unavailable", err)
	}

	if _, err := coll.InsertOne(ctx, newTaskDocument(task)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to insert task",
			"error", redact.Error(err),
			"task_id", task.ID)
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}
	return nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *MongoTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "database unavailable", err)
	}

	cursor, err := coll.Find(ctx,
		bson.M{"user_id": userID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		log.Error("failed to query tasks", "error", redact.Error(err), "user_id", userID)
		return nil, store.NewStoreError("task", "list", "query failed", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode tasks", "error", redact.Error(err), "user_id", userID)
		return nil, store.NewStoreError("task", "list", "decode failed", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			return nil, store.NewStoreError("task", "list", "corrupt document", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetForUser implements store.TaskStore.GetForUser
func (s *MongoTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, store.NewStoreError("task", "get", "database unavailable", err)
	}

	var doc taskDocument
	if err := coll.FindOne(ctx, ownedFilter(id, userID)).Decode(&doc); err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find task",
			"error", redact.Error(err),
			"task_id", id)
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	return doc.toDomain()
}

// Update implements store.TaskStore.Update
func (s *MongoTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return store.NewStoreError("task", "update", "database unavailable", err)
	}

	doc := newTaskDocument(task)
	result, err := coll.UpdateOne(ctx,
		ownedFilter(task.ID, task.UserID),
		bson.M{"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"status":      doc.Status,
			"priority":    doc.Priority,
			"due_date":    doc.DueDate,
			"updated_at":  doc.UpdatedAt,
		}},
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			"error", redact.Error(err),
			"task_id", task.ID)
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}
	if result.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// DeleteForUser implements store.TaskStore.DeleteForUser
func (s *MongoTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return store.NewStoreError("task", "delete", "database unavailable", err)
	}

	result, err := coll.DeleteOne(ctx, ownedFilter(id, userID))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			"error", redact.Error(err),
			"task_id", id)
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	if result.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}
