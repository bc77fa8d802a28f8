package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// AuthHandler handles account and session requests.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	cookies     CookieOptions
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	cookies CookieOptions,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		cookies:     cookies,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SignupRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to signup")
		return
	}

	if !h.startSession(w, r, user, "Failed to signup") {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user.Public(),
	})
}

// Login handles POST /auth/login. Unknown emails and wrong passwords get the
// same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to login")
		return
	}

	if !h.startSession(w, r, user, "Failed to login") {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Welcome back " + user.Name,
		User:    user.Public(),
	})
}

// Logout handles POST /auth/logout. It always succeeds, with or without a
// session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.expiredCookie())
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{Success: true, User: user.Public()})
}

// UpdateMe handles PUT /auth/me. Only the fields present in the body change.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Update failed")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{Success: true, User: user.Public()})
}

// startSession issues a token for user and sets the session cookie.
// It writes a 500 and returns false when signing fails.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *domain.User, failMsg string) bool {
	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, failMsg, err)
		return false
	}

	http.SetCookie(w, h.cookies.sessionCookie(token))
	return true
}
