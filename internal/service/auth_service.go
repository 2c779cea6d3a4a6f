package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eventkampus/api/internal/auth"
	"github.com/eventkampus/api/internal/config"
	"github.com/eventkampus/api/internal/domain"
	"github.com/eventkampus/api/internal/repository"
	util "github.com/eventkampus/api/pkg/util"
)

// AuthTokens bundles the issued token pair.
type AuthTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration, login, and token refresh.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes, cfg.RefreshTokenTTLHours),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. The role defaults to ATTENDEE and is
// immutable afterwards.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleAttendee
	}
	if !role.Valid() {
		return nil, util.NewValidationError("unknown role", map[string]any{"field": "role"})
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, util.NewConflict("email already registered", map[string]any{"field": "email"})
	} else if err != pgx.ErrNoRows {
		return nil, util.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, util.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, util.NewConflict("email already registered", map[string]any{"field": "email"})
		}
		return nil, util.MapError(err)
	}
	return user, nil
}

// Login authenticates by email and password. Failures are reported with a
// single generic message so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *AuthTokens, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, util.NewUnauthorized("invalid credentials")
		}
		return nil, nil, util.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, util.NewUnauthorized("invalid credentials")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, util.MapError(err)
	}
	return user, tokens, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, time.Time, error) {
	claims, err := s.tokenMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, util.NewUnauthorized("user no longer exists")
		}
		return nil, "", time.Time{}, util.MapError(err)
	}

	access, exp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, "", time.Time{}, util.MapError(err)
	}
	return user, access, exp, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthTokens, error) {
	access, accessExp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
