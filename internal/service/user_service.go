package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// dummyPassword is hashed once and compared against on logins for unknown
// emails so those take as long as a wrong-password attempt.
const dummyPassword = "taskboard-login-timing-equalizer"

// UserService provides account operations.
type UserService interface {
	// Signup registers a new account and returns it.
	// Returns a ValidationError wrapping ErrMissingFields if any input is blank,
	// and store.ErrEmailExists if the email is taken.
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login checks credentials and returns the matching account.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// GetProfile returns the account for userID, or store.ErrUserNotFound.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies a partial name/bio edit and returns the result.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
}

type userService struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	opTimeout time.Duration
	logger    *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

var _ UserService = (*userService)(nil)

// NewUserService creates a UserService. opTimeout bounds each store call.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	opTimeout time.Duration,
	logger *slog.Logger,
) UserService {
	return &userService{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		opTimeout: opTimeout,
		logger:    logger,
	}
}

func (s *userService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	log := componentLogger(ctx, s.logger, "user_service")

	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, domain.NewValidationError("", "all fields are required", ErrMissingFields)
	}

	if _, err := s.getByEmail(ctx, email); err == nil {
		log.Debug("signup rejected: email already registered")
		return nil, fmt.Errorf("signup: %w", store.ErrEmailExists)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		log.Error("failed to check existing user", "error", redact.Error(err))
		return nil, NewServiceError("user", "signup", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		return nil, NewServiceError("user", "signup", err)
	}

	user, err := domain.NewUser(name, email, hashed)
	if err != nil {
		return nil, domain.NewValidationError("email", "is not a valid address", err)
	}

	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.userStore.Create(opCtx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup lost race on email uniqueness")
			return nil, fmt.Errorf("signup: %w", err)
		}
		log.Error("failed to save user", "error", redact.Error(err))
		return nil, NewServiceError("user", "signup", err)
	}

	log.Info("user signed up", "user_id", user.ID)
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	log := componentLogger(ctx, s.logger, "user_service")

	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "all fields are required", ErrMissingFields)
	}

	user, err := s.getByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.verifier.Compare(s.timingHash(), password)
			log.Debug("login failed")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", redact.Error(err))
		return nil, NewServiceError("user", "login", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed")
		return nil, ErrInvalidCredentials
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()

	user, err := s.userStore.GetByID(opCtx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		componentLogger(ctx, s.logger, "user_service").Error("failed to load user",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewServiceError("user", "get profile", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update domain.ProfileUpdate,
) (*domain.User, error) {
	log := componentLogger(ctx, s.logger, "user_service")

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := update.Apply(user); err != nil {
		return nil, err
	}

	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.userStore.UpdateProfile(opCtx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		log.Error("failed to update profile",
			"error", redact.Error(err),
			"user_id", userID)
		return nil, NewServiceError("user", "update profile", err)
	}

	log.Debug("profile updated", "user_id", userID)
	return user, nil
}

func (s *userService) getByEmail(ctx context.Context, email string) (*domain.User, error) {
	opCtx, cancel := withOpTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.userStore.GetByEmail(opCtx, email)
}

func (s *userService) timingHash() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare login timing hash", "error", redact.Error(err))
			return
		}
		s.dummyHash = hashed
	})
	return s.dummyHash
}
