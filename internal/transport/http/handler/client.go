package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type ClientHandler struct{ svc *service.ClientService }

func NewClientHandler(svc *service.ClientService) *ClientHandler { return &ClientHandler{svc: svc} }

type clientReq struct {
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

func (r clientReq) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return domain.Validation("Client name is required")
	case strings.TrimSpace(r.Code) == "":
		return domain.Validation("Client code is required")
	case strings.TrimSpace(r.City) == "":
		return domain.Validation("Client city is required")
	}
	return nil
}

func (r clientReq) client() domain.Client {
	return domain.Client{Name: r.Name, Code: r.Code, City: r.City}
}

func (h *ClientHandler) Mount(e ez.EZ) {
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/clients", Binder: ez.BindNone, Auth: true,
		Handler: h.list,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/clients/:id", Binder: ez.BindNone, Auth: true,
		Handler: h.get,
	})
	ez.Register(e, ez.Action[clientReq]{
		Method: http.MethodPost, Path: "/clients", Binder: ez.BindJSON, Auth: true,
		Status:  http.StatusCreated,
		Handler: h.create,
	})
	ez.Register(e, ez.Action[clientReq]{
		Method: http.MethodPut, Path: "/clients/:id", Binder: ez.BindJSON, Auth: true,
		Handler: h.update,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodDelete, Path: "/clients/:id", Binder: ez.BindNone, Auth: true,
		Status:  http.StatusNoContent,
		Handler: h.delete,
	})
}

func (h *ClientHandler) list(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	cs, err := h.svc.List(c.Request.Context())
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Clients retrieved successfully", resp.Fields{"clients": cs, "count": len(cs)}), nil
}

func (h *ClientHandler) get(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	cl, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Client retrieved successfully", resp.Fields{"client": cl}), nil
}

func (h *ClientHandler) create(c *gin.Context, in *clientReq) (resp.Resp, error) {
	ctx := c.Request.Context()
	if err := in.validate(); err != nil {
		return resp.Resp{}, err
	}
	taken, err := h.svc.ExistsByCode(ctx, in.Code)
	if err != nil {
		return resp.Resp{}, err
	}
	if taken {
		return resp.Resp{}, domain.Conflict("Client code already exists")
	}
	cl := in.client()
	if err := h.svc.Create(ctx, &cl); err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Client created successfully", resp.Fields{"client": cl}), nil
}

func (h *ClientHandler) update(c *gin.Context, in *clientReq) (resp.Resp, error) {
	ctx := c.Request.Context()
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	cur, err := h.svc.Get(ctx, id)
	if err != nil {
		return resp.Resp{}, err
	}
	if err := in.validate(); err != nil {
		return resp.Resp{}, err
	}
	if in.Code != cur.Code {
		taken, err := h.svc.ExistsByCode(ctx, in.Code)
		if err != nil {
			return resp.Resp{}, err
		}
		if taken {
			return resp.Resp{}, domain.Conflict("Client code already exists")
		}
	}
	cl, err := h.svc.Update(ctx, id, in.client())
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Client updated successfully", resp.Fields{"client": cl}), nil
}

func (h *ClientHandler) delete(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	ctx := c.Request.Context()
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	ok, err := h.svc.ExistsByID(ctx, id)
	if err != nil {
		return resp.Resp{}, err
	}
	if !ok {
		return resp.Resp{}, domain.NotFound("Client not found")
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Client deleted successfully", nil), nil
}
