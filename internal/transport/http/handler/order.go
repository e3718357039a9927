package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
	"github.com/khaoulaLakhdim/orders-management/internal/service"
	"github.com/khaoulaLakhdim/orders-management/internal/transport/http/ez"
	resp "github.com/khaoulaLakhdim/orders-management/internal/transport/http/response"
)

type OrderHandler struct {
	orders  *service.OrderService
	clients *service.ClientService
}

func NewOrderHandler(orders *service.OrderService, clients *service.ClientService) *OrderHandler {
	return &OrderHandler{orders: orders, clients: clients}
}

type clientRef struct {
	ID *int64 `json:"id"`
}

// orderReq takes the client either as clientId or as client: {id}.
type orderReq struct {
	ProductName   string               `json:"productName"`
	ClientID      *int64               `json:"clientId"`
	Client        *clientRef           `json:"client"`
	Quantity      *int                 `json:"quantity"`
	Price         *domain.Money        `json:"price"`
	OrderDate     *domain.Date         `json:"orderDate"`
	Type          *int                 `json:"type"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Expedition    domain.Expedition    `json:"expedition"`
	Status        domain.OrderStatus   `json:"status"`
}

func (r orderReq) clientID() *int64 {
	if r.ClientID != nil {
		return r.ClientID
	}
	if r.Client != nil {
		return r.Client.ID
	}
	return nil
}

// validate runs presence, then range, then enumeration checks.
func (r orderReq) validate() error {
	switch {
	case strings.TrimSpace(r.ProductName) == "":
		return domain.Validation("Product name is required")
	case r.clientID() == nil:
		return domain.Validation("Client is required")
	case r.Quantity == nil:
		return domain.Validation("Valid quantity is required")
	case r.Price == nil:
		return domain.Validation("Valid price is required")
	}
	switch {
	case *r.Quantity <= 0:
		return domain.Validation("Valid quantity is required")
	case !r.Price.Positive():
		return domain.Validation("Valid price is required")
	case r.PaymentMethod != "" && !r.PaymentMethod.Valid():
		return domain.Validation(fmt.Sprintf("Invalid payment method: %s", r.PaymentMethod))
	case r.Expedition != "" && !r.Expedition.Valid():
		return domain.Validation(fmt.Sprintf("Invalid expedition: %s", r.Expedition))
	case r.Status != "" && !r.Status.Valid():
		return domain.Validation(fmt.Sprintf("Invalid status: %s", r.Status))
	}
	return nil
}

func (r orderReq) order() domain.Order {
	o := domain.Order{
		ProductName:   r.ProductName,
		ClientID:      *r.clientID(),
		Quantity:      *r.Quantity,
		Price:         *r.Price,
		Type:          r.Type,
		PaymentMethod: r.PaymentMethod,
		Expedition:    r.Expedition,
		Status:        r.Status,
	}
	if r.OrderDate != nil {
		o.OrderDate = *r.OrderDate
	}
	return o
}

type orderListQ struct {
	Page     int    `form:"page,default=0"`
	Size     int    `form:"size,default=10"`
	ClientID *int64 `form:"clientId"`
}

func (h *OrderHandler) Mount(e ez.EZ) {
	ez.Register(e, ez.Action[orderListQ]{
		Method: http.MethodGet, Path: "/orders", Binder: ez.BindQuery, Auth: true,
		Handler: h.list,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet, Path: "/orders/:id", Binder: ez.BindNone, Auth: true,
		Handler: h.get,
	})
	ez.Register(e, ez.Action[orderReq]{
		Method: http.MethodPost, Path: "/orders", Binder: ez.BindJSON, Auth: true,
		Status:  http.StatusCreated,
		Handler: h.create,
	})
	ez.Register(e, ez.Action[orderReq]{
		Method: http.MethodPut, Path: "/orders/:id", Binder: ez.BindJSON, Auth: true,
		Handler: h.update,
	})
	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodDelete, Path: "/orders/:id", Binder: ez.BindNone, Auth: true,
		Status:  http.StatusNoContent,
		Handler: h.delete,
	})
}

func (h *OrderHandler) list(c *gin.Context, in *orderListQ) (resp.Resp, error) {
	p, err := h.orders.List(c.Request.Context(), domain.PageRequest{Page: in.Page, Size: in.Size}, in.ClientID)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.Paged("Orders retrieved successfully", "orders", p), nil
}

func (h *OrderHandler) get(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Order retrieved successfully", resp.Fields{"order": o}), nil
}

// checkClient is the referential step: the order's client must exist.
func (h *OrderHandler) checkClient(c *gin.Context, id int64) error {
	ok, err := h.clients.ExistsByID(c.Request.Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Referential(fmt.Sprintf("Client not found with id: %d", id))
	}
	return nil
}

func (h *OrderHandler) create(c *gin.Context, in *orderReq) (resp.Resp, error) {
	if err := in.validate(); err != nil {
		return resp.Resp{}, err
	}
	if err := h.checkClient(c, *in.clientID()); err != nil {
		return resp.Resp{}, err
	}
	o := in.order()
	saved, err := h.orders.Create(c.Request.Context(), &o)
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Order created successfully", resp.Fields{"order": saved}), nil
}

func (h *OrderHandler) update(c *gin.Context, in *orderReq) (resp.Resp, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	if _, err := h.orders.Get(c.Request.Context(), id); err != nil {
		return resp.Resp{}, err
	}
	if err := in.validate(); err != nil {
		return resp.Resp{}, err
	}
	if err := h.checkClient(c, *in.clientID()); err != nil {
		return resp.Resp{}, err
	}
	o, err := h.orders.Update(c.Request.Context(), id, in.order())
	if err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Order updated successfully", resp.Fields{"order": o}), nil
}

func (h *OrderHandler) delete(c *gin.Context, _ *struct{}) (resp.Resp, error) {
	ctx := c.Request.Context()
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return resp.Resp{}, err
	}
	ok, err := h.orders.ExistsByID(ctx, id)
	if err != nil {
		return resp.Resp{}, err
	}
	if !ok {
		return resp.Resp{}, domain.NotFound("Order not found")
	}
	if err := h.orders.Delete(ctx, id); err != nil {
		return resp.Resp{}, err
	}
	return resp.OK("Order deleted successfully", nil), nil
}
