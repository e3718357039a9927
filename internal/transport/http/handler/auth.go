package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type credentials struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// MountPublic registers login, register and logout. Logout expects the
// group to carry OptionalAuth.
func (h *AuthHandler) MountPublic(e ez.EZ) {
	ez.Register(e, ez.Action[credentials]{
		Method: http.MethodPost, Path: "/auth/login", Binder: ez.BindJSON,
		Handler: h.login,
	})
	ez.Register(e, ez.Action[credentials]{
		Method: http.MethodPost, Path: "/auth/register", Binder: ez.BindJSON,
		Status:  http.StatusCreated,
		Handler: h.register,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodPost, Path: "/auth/logout", Binder: ez.BindNone,
		Handler: h.logout,
	})
}

func (h *AuthHandler) Mount(e ez.EZ) {
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/auth/me", Binder: ez.BindNone, Auth: true,
		Handler: h.me,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/auth/users", Binder: ez.BindNone,
		Roles:   []string{string(domain.RoleAdmin)},
		Handler: h.users,
	})
}

func (h *AuthHandler) login(c *gin.Context, in *credentials) (resp.Resp, error) {
	s, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Login successful", resp.Fields{
		"user":      s.User,
		"token":     s.Token,
		"tokenType": "Bearer",
		"expiresAt": s.ExpiresAt,
	}), nil
}

// register is public for USER accounts; any other role needs an ADMIN caller.
func (h *AuthHandler) register(c *gin.Context, in *credentials) (resp.Resp, error) {
	if in.Role.Valid() && in.Role != domain.RoleUser {
		id, ok := auth.IdentityFrom(c.Request.Context())
		if !ok || !id.HasRole(string(domain.RoleAdmin)) {
			return resp.Resp{}, domain.Forbidden("Access denied. Admin role required.")
		}
	}
	u, err := h.svc.Register(c.Request.Context(), in.Username, in.Password, in.Role)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("User registered successfully", resp.Fields{"user": u}), nil
}

func (h *AuthHandler) logout(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if err := h.svc.Logout(c.Request.Context(), id, ok); err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Logout successful", nil), nil
}

func (h *AuthHandler) me(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	u, err := h.svc.Me(c.Request.Context(), id, ok)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Authenticated", resp.Fields{"user": u}), nil
}

func (h *AuthHandler) users(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	us, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Users retrieved successfully", resp.Fields{"users": us, "count": len(us)}), nil
}
