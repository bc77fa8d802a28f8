package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MongoUserStore implements store.UserStore on the users collection.
type MongoUserStore struct {
	conn   *Connection
	logger *slog.Logger
}

// NewMongoUserStore creates a user store backed by conn.
func NewMongoUserStore(conn *Connection, logger *slog.Logger) *MongoUserStore {
	if conn == nil {
		// ALLOW-PANIC: constructor misuse
		panic("conn cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoUserStore{
		conn:   conn,
		logger: logger.With(slog.String("component", "mongo_user_store")),
	}
}

var _ store.UserStore = (*MongoUserStore)(nil)

func (s *MongoUserStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(usersCollection), nil
}

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return store.NewStoreError("user", "create", "database unavailable", err)
	}

	if _, err := coll.InsertOne(ctx, newUserDocument(user)); err != nil {
		err = MapError(err)
		if store.IsDuplicateError(err) {
			log.Debug("user insert rejected by unique email index")
			return store.ErrEmailExists
		}
		log.Error("failed to insert user", "error", redact.Error(err), "user_id", user.ID)
		return store.NewStoreError("user", "create", "insert failed", err)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, "get by id", bson.M{"_id": id.String()})
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "get by email", bson.M{"email": domain.NormalizeEmail(email)})
}

func (s *MongoUserStore) findOne(ctx context.Context, op string, filter bson.M) (*domain.User, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, store.NewStoreError("user", op, "database unavailable", err)
	}

	var doc userDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		err = MapError(err)
		if store.IsNotFoundError(err) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find user",
			"operation", op,
			"error", redact.Error(err))
		return nil, store.NewStoreError("user", op, "query failed", err)
	}

	return doc.toDomain()
}

// UpdateProfile implements store.UserStore.UpdateProfile
func (s *MongoUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return store.NewStoreError("user", "update profile", "database unavailable", err)
	}

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": user.ID.String()},
		bson.M{"$set": bson.M{
			"name":       user.Name,
			"bio":        user.Bio,
			"updated_at": user.UpdatedAt.UTC(),
		}},
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update user profile",
			"error", redact.Error(err),
			"user_id", user.ID)
		return store.NewStoreError("user", "update profile", "update failed", MapError(err))
	}
	if result.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
