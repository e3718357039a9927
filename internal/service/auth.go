package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/core/metrics"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	deny  auth.Denylist
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, j *auth.JWTer, deny auth.Denylist, log *zap.Logger) *AuthService {
	if deny == nil {
		deny = auth.NopDenylist{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, jwt: j, deny: deny, log: log.Named("auth")}
}

// Session is what a successful login hands back to the caller.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.Validation("Username and password are required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.Validation("Invalid role: " + string(role))
	}
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, domain.Unexpected("Registration failed", err)
	}
	if taken {
		return nil, domain.Conflict("Username already exists")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, domain.Unexpected("Registration failed", err)
	}
	u := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Username already exists")
		}
		return nil, domain.Unexpected("Registration failed", err)
	}
	metrics.RecordWrite("user", "create")
	s.log.Info("user registered", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, domain.Validation("Username and password are required")
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.Unexpected("Login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Unauthenticated("Invalid username or password")
	}
	tok, claims, err := s.jwt.Issue(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, domain.Unexpected("Login failed", err)
	}
	return &Session{User: u, Token: tok, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Authenticate turns a bearer token into the caller's identity. Revoked
// and malformed tokens are rejected alike.
func (s *AuthService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return auth.Identity{}, domain.Unauthenticated("Invalid or expired token")
	}
	id, err := auth.IdentityFromClaims(claims)
	if err != nil {
		return auth.Identity{}, domain.Unauthenticated("Invalid or expired token")
	}
	revoked, err := s.deny.Revoked(ctx, id.TokenID)
	if err != nil {
		return auth.Identity{}, domain.Unexpected("Token check failed", err)
	}
	if revoked {
		return auth.Identity{}, domain.Unauthenticated("Token has been revoked")
	}
	return id, nil
}

// Logout revokes the caller's token. Without an identity it does nothing.
func (s *AuthService) Logout(ctx context.Context, id auth.Identity, ok bool) error {
	if !ok {
		return nil
	}
	if err := s.deny.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return domain.Unexpected("Logout failed", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, id auth.Identity, ok bool) (*domain.User, error) {
	if !ok {
		return nil, domain.Unauthenticated("Not authenticated")
	}
	u, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, domain.Unexpected("Error getting user info", err)
	}
	if u == nil {
		return nil, domain.Unauthenticated("Not authenticated")
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, domain.Unexpected("Error getting users", err)
	}
	return us, nil
}
