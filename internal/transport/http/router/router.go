package router

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khaoulaLakhdim/orders-management/internal/core/config"
	"github.com/khaoulaLakhdim/orders-management/internal/seed"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/handler"
	mdw "github.com/khaoulaLakhdim/orders-management/internal/transport/http/middleware"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type Deps struct {
	HTTP    config.HTTP
	Log     *zap.Logger
	Clients *service.ClientService
	Orders  *service.OrderService
	Auth    *service.AuthService
	Seeder  *seed.Seeder
	Ping    func(context.Context) error
}

func NewAPIEngine(d Deps) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.Recovery(l),
	)
	if c, ok := corsConfig(d.HTTP.CORSOrigins); ok {
		r.Use(cors.New(c))
	}
	r.Use(
		mdw.RateLimit(rate.Limit(d.HTTP.RatePerSec), d.HTTP.RateBurst),
		mdw.ConcurrencyLimit(d.HTTP.MaxInFlight),
		mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.HTTP.RequestTimeoutSec)*time.Second),
	)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error("Resource not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, resp.Error("Method not allowed"))
	})

	r.GET("/ping", handler.Ping)
	r.GET("/health", handler.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := handler.NewAuthHandler(d.Auth)
	seedH := handler.NewSeederHandler(d.Seeder, d.Clients)

	api := r.Group(d.HTTP.Prefix)

	public := ez.New(api, l)
	handler.NewHealthHandler(d.Ping, d.Seeder).Mount(public)
	seedH.MountPublic(public)

	authH.MountPublic(ez.New(api.Group("", mdw.OptionalAuth(d.Auth)), l))

	protected := ez.New(api.Group("", mdw.AuthJWT(d.Auth, l)), l)
	handler.NewClientHandler(d.Clients).Mount(protected)
	handler.NewOrderHandler(d.Orders, d.Clients).Mount(protected)
	authH.Mount(protected)
	seedH.Mount(protected)

	return r
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", mdw.HeaderRequestID},
		ExposeHeaders: []string{mdw.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c, true
}
