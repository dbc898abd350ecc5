package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
)

var _ api.AuthServiceHandler = (*AuthService)(nil)

// PublicProcedures lists the procedures reachable without a bearer token.
var PublicProcedures = []string{
	api.AuthServiceSignupProcedure,
	api.AuthServiceLoginProcedure,
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Signup creates a new user account and returns a session token.
func (s *AuthService) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Signup request", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Name, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Signup failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID)
	return resp, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return resp, nil
}

func (s *AuthService) issue(user *models.User) (*connect.Response[api.AuthResponse], error) {
	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, api.NewError(api.KindInternal, errors.New("failed to issue token"))
	}
	return connect.NewResponse(&api.AuthResponse{
		Token: token,
		User:  toAPIUser(user),
	}), nil
}

// Logout is a no-op: tokens are stateless and the client discards its copy.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request", "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetProfile returns the authenticated user's account.
func (s *AuthService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.ProfileResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ProfileResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile changes the authenticated user's name, email and avatar.
// An empty avatar keeps the current one.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.ProfileResponse], error) {
	if err := models.ValidateProfile(req.Msg.Name, req.Msg.Email); err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Msg.Name)
	user.Email = models.NormalizeEmail(req.Msg.Email)
	if req.Msg.Avatar != "" {
		user.Avatar = req.Msg.Avatar
	}
	user.UpdatedAt = time.Now().Unix()

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		s.logger.Warn("UpdateProfile failed", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return connect.NewResponse(&api.ProfileResponse{User: toAPIUser(user)}), nil
}

// currentUser loads the caller. A valid token for a user that no longer
// exists is treated as an invalid session.
func (s *AuthService) currentUser(ctx context.Context) (*models.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, api.NewError(api.KindUnauthenticated, auth.ErrInvalidToken)
	}
	if err != nil {
		s.logger.Error("Failed to load user", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return user, nil
}
