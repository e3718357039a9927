package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/seed"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type HealthHandler struct {
	ping   func(context.Context) error
	seeder *seed.Seeder
}

func NewHealthHandler(ping func(context.Context) error, s *seed.Seeder) *HealthHandler {
	return &HealthHandler{ping: ping, seeder: s}
}

// Liveness answers /health without touching the database.
func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, resp.OK("UP", resp.Fields{"time": time.Now().UTC()}))
}

func Ping(c *gin.Context) { c.String(http.StatusOK, "pong") }

func (h *HealthHandler) Mount(e ez.EZ) {
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/db/health", Binder: ez.BindNone,
		Handler: h.db,
	})
}

func (h *HealthHandler) db(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	ctx := c.Request.Context()
	if err := h.ping(ctx); err != nil {
		return resp.Resp{}, domain.Unexpected("Database connection failed", err)
	}
	st, err := h.seeder.Status(ctx)
	if err != nil {
		return resp.Resp{}, domain.Unexpected("Database connection failed", err)
	}
	return resp.OK("Database connection is working", resp.Fields{
		"totalUsers":   st.Users,
		"totalClients": st.Clients,
		"totalOrders":  st.Orders,
		"timestamp":    time.Now().UTC(),
	}), nil
}
