package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newInMemoryUserService() (service.UserService, *mocks.MockUserStore) {
	userStore := mocks.NewMockUserStore()
	svc := service.NewUserService(userStore, &mocks.PlainHasher{}, mocks.PlainVerifier{}, time.Second, discardLogger())
	return svc, userStore
}

func TestUserService_Signup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "a@x.io", "pw1", service.ErrMissingFields},
		{"blank name", "   ", "a@x.io", "pw1", service.ErrMissingFields},
		{"missing email", "Alice", "", "pw1", service.ErrMissingFields},
		{"missing password", "Alice", "a@x.io", "", service.ErrMissingFields},
		{"malformed email", "Alice", "not-an-email", "pw1", domain.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userStore := newInMemoryUserService()

			user, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password)

			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, 0, userStore.Count())
		})
	}
}

func TestUserService_SignupThenLogin(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	hasher, err := auth.NewBcryptHasher(auth.MinBcryptCost)
	require.NoError(t, err)
	svc := service.NewUserService(userStore, hasher, auth.NewBcryptVerifier(), time.Second, discardLogger())
	ctx := context.Background()

	created, err := svc.Signup(ctx, "  Alice ", " A@X.io ", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "a@x.io", created.Email)
	assert.NotEqual(t, "pw1", created.HashedPassword)
	assert.Equal(t, "", created.Bio)

	loggedIn, err := svc.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "a@x.io", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUserService_SignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, userStore := newInMemoryUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Someone Else", "A@x.io", "different")
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.Equal(t, 1, userStore.Count())
}

func TestUserService_SignupStoreRaceMapsToConflict(t *testing.T) {
	t.Parallel()

	userStore := new(mocks.UserStore)
	userStore.On("GetByEmail", mock.Anything, "a@x.io").Return(nil, store.ErrUserNotFound)
	userStore.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(store.ErrEmailExists)

	svc := service.NewUserService(userStore, &mocks.PlainHasher{}, mocks.PlainVerifier{}, time.Second, discardLogger())

	_, err := svc.Signup(context.Background(), "Alice", "a@x.io", "pw1")

	assert.ErrorIs(t, err, store.ErrEmailExists)
	userStore.AssertExpectations(t)
}

func TestUserService_SignupStoreFailure(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	userStore := new(mocks.UserStore)
	userStore.On("GetByEmail", mock.Anything, "a@x.io").Return(nil, dbErr)

	svc := service.NewUserService(userStore, &mocks.PlainHasher{}, mocks.PlainVerifier{}, time.Second, discardLogger())

	_, err := svc.Signup(context.Background(), "Alice", "a@x.io", "pw1")

	var serviceErr *service.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.ErrorIs(t, err, dbErr)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newInMemoryUserService()

		_, err := svc.Login(context.Background(), "", "pw1")
		assert.ErrorIs(t, err, service.ErrMissingFields)

		_, err = svc.Login(context.Background(), "a@x.io", "")
		assert.ErrorIs(t, err, service.ErrMissingFields)
	})

	t.Run("unknown email still compares a hash", func(t *testing.T) {
		verifier := &mocks.MockPasswordVerifier{}
		svc := service.NewUserService(
			mocks.NewMockUserStore(), &mocks.PlainHasher{}, verifier, time.Second, discardLogger())

		_, err := svc.Login(context.Background(), "ghost@x.io", "pw1")

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Equal(t, 1, verifier.CallCount())
		hash, plain := verifier.LastCall()
		assert.NotEmpty(t, hash)
		assert.Equal(t, "pw1", plain)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc, _ := newInMemoryUserService()
		ctx := context.Background()
		_, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
		require.NoError(t, err)

		_, wrongPassword := svc.Login(ctx, "a@x.io", "nope")
		_, unknownEmail := svc.Login(ctx, "b@x.io", "pw1")

		assert.Equal(t, wrongPassword, unknownEmail)
		assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	})

	t.Run("email lookup is normalized", func(t *testing.T) {
		svc, _ := newInMemoryUserService()
		ctx := context.Background()
		_, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
		require.NoError(t, err)

		user, err := svc.Login(ctx, "  A@X.IO", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	t.Parallel()

	svc, userStore := newInMemoryUserService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
	require.NoError(t, err)

	user, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", user.Email)

	userStore.Delete(created.ID)
	_, err = svc.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	t.Run("updates provided fields only", func(t *testing.T) {
		svc, _ := newInMemoryUserService()
		ctx := context.Background()
		created, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
		require.NoError(t, err)

		updated, err := svc.UpdateProfile(ctx, created.ID, domain.ProfileUpdate{Bio: strPtr("  writes Go  ")})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "writes Go", updated.Bio)

		reloaded, err := svc.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "writes Go", reloaded.Bio)
	})

	t.Run("blank name is rejected and nothing persists", func(t *testing.T) {
		svc, _ := newInMemoryUserService()
		ctx := context.Background()
		created, err := svc.Signup(ctx, "Alice", "a@x.io", "pw1")
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, created.ID, domain.ProfileUpdate{Name: strPtr("  "), Bio: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrValidation)

		reloaded, err := svc.GetProfile(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", reloaded.Name)
		assert.Equal(t, "", reloaded.Bio)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, _ := newInMemoryUserService()

		_, err := svc.UpdateProfile(context.Background(), uuid.New(), domain.ProfileUpdate{Name: strPtr("Bob")})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("store update is called with the edited user", func(t *testing.T) {
		userID := uuid.New()
		existing := &domain.User{ID: userID, Name: "Alice", Email: "a@x.io", HashedPassword: "h"}

		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, userID).Return(existing, nil)
		userStore.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == userID && u.Name == "Alicia" && u.HashedPassword == "h"
		})).Return(nil)

		svc := service.NewUserService(userStore, &mocks.PlainHasher{}, mocks.PlainVerifier{}, time.Second, discardLogger())

		updated, err := svc.UpdateProfile(context.Background(), userID, domain.ProfileUpdate{Name: strPtr("Alicia")})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
		userStore.AssertExpectations(t)
	})
}

func TestUserService_AppliesOperationTimeout(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	userStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		return nil, store.ErrUserNotFound
	}
	svc := service.NewUserService(userStore, &mocks.PlainHasher{}, mocks.PlainVerifier{}, 50*time.Millisecond, discardLogger())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
