package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/seed"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type SeederHandler struct {
	seeder  *seed.Seeder
	clients *service.ClientService
}

func NewSeederHandler(s *seed.Seeder, clients *service.ClientService) *SeederHandler {
	return &SeederHandler{seeder: s, clients: clients}
}

func (h *SeederHandler) MountPublic(e ez.EZ) {
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/seeder/status", Binder: ez.BindNone,
		Handler: h.status,
	})
}

func (h *SeederHandler) Mount(e ez.EZ) {
	admin := []string{string(domain.RoleAdmin)}
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodPost, Path: "/seeder/seed", Binder: ez.BindNone, Roles: admin,
		Handler: h.reseed,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodDelete, Path: "/seeder/clear", Binder: ez.BindNone, Roles: admin,
		Handler: h.clear,
	})
}

func statusFields(st seed.Status) resp.Fields {
	return resp.Fields{
		"users":    st.Users,
		"clients":  st.Clients,
		"orders":   st.Orders,
		"isSeeded": st.IsSeeded,
	}
}

func (h *SeederHandler) status(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	st, err := h.seeder.Status(c.Request.Context())
	if err != nil {
		return resp.Resp{}, domain.Unexpected("Failed to read seeding status", err)
	}
	return resp.OK("Seeding status", statusFields(st)), nil
}

func (h *SeederHandler) reseed(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	ctx := c.Request.Context()
	st, err := h.seeder.Reseed(ctx)
	h.clients.EvictAll(ctx)
	if err != nil {
		return resp.Resp{}, domain.Unexpected("Failed to seed database", err)
	}
	return resp.OK("Database seeded successfully!", statusFields(st)), nil
}

func (h *SeederHandler) clear(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	ctx := c.Request.Context()
	err := h.seeder.Clear(ctx)
	h.clients.EvictAll(ctx)
	if err != nil {
		return resp.Resp{}, domain.Unexpected("Failed to clear data", err)
	}
	return resp.OK("All data cleared successfully!", nil), nil
}
