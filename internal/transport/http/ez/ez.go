// Package ez registers handlers as typed actions: bind input, check the
// caller, run, and write the envelope.
package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/auth"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// Action describes one endpoint. I is the bound input.
type Action[I any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool     // require an authenticated caller
	Roles   []string // any of these roles, implies Auth
	Status  int      // on success; 200 when zero
	Handler func(c *gin.Context, in *I) (resp.Resp, error)
}

func Register[I any](e EZ, a Action[I]) {
	okStatus := a.Status
	if okStatus == 0 {
		okStatus = http.StatusOK
	}
	h := func(c *gin.Context) {
		if a.Auth || len(a.Roles) > 0 {
			if err := authorize(c, a.Roles); err != nil {
				Fail(c, e.log, err)
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			Fail(c, e.log, domain.Validation(bindMessage(bindErr)))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, e.log, err)
			return
		}
		if okStatus == http.StatusNoContent {
			c.Status(okStatus)
			return
		}
		c.JSON(okStatus, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func authorize(c *gin.Context, roles []string) error {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		return domain.Unauthenticated("Not authenticated")
	}
	if len(roles) > 0 && !id.HasRole(roles...) {
		return domain.Forbidden(deniedMessage(roles))
	}
	return nil
}

// deniedMessage reads e.g. "Access denied. Admin role required."
func deniedMessage(roles []string) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		r = strings.ToLower(r)
		if r != "" {
			r = strings.ToUpper(r[:1]) + r[1:]
		}
		names[i] = r
	}
	return "Access denied. " + strings.Join(names, " or ") + " role required."
}

// Fail writes err as a failed envelope with the status its kind maps to.
func Fail(c *gin.Context, l *zap.Logger, err error) {
	status := resp.StatusOf(err)
	if status >= http.StatusInternalServerError {
		l.Error("request failed",
			zap.String("rid", c.GetString("rid")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, resp.Error(err.Error()))
}

func bindMessage(err error) string {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return "Request body too large"
	}
	return "Invalid request body: " + err.Error()
}

// ParamID reads a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("Invalid id: " + raw)
	}
	return id, nil
}
