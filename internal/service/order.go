package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/metrics"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

type OrderService struct {
	repo domain.OrderRepository
	log  *zap.Logger
	now  func() domain.Date
}

func NewOrderService(repo domain.OrderRepository, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{repo: repo, log: log.Named("order"), now: domain.Today}
}

// List pages through all orders, or through one client's orders when
// clientID is set.
func (s *OrderService) List(ctx context.Context, p domain.PageRequest, clientID *int64) (domain.Page[domain.Order], error) {
	if err := p.Validate(); err != nil {
		return domain.Page[domain.Order]{}, err
	}
	var (
		page domain.Page[domain.Order]
		err  error
	)
	if clientID != nil {
		page, err = s.repo.FindByClientID(ctx, *clientID, p)
	} else {
		page, err = s.repo.FindPage(ctx, p)
	}
	if err != nil {
		return page, domain.Unexpected("Failed to retrieve orders", err)
	}
	return page, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Unexpected("Failed to retrieve order", err)
	}
	if o == nil {
		return nil, domain.NotFound("Order not found")
	}
	return o, nil
}

func (s *OrderService) normalize(o *domain.Order) {
	o.Price = domain.NewMoney(o.Price.Decimal)
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}
}

// Create stores o and returns it as read back, client name included.
func (s *OrderService) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	o.ID = 0
	s.normalize(o)
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, domain.Unexpected("Failed to create order", err)
	}
	metrics.RecordWrite("order", "create")
	s.log.Debug("order created", zap.Int64("id", o.ID), zap.Int64("clientId", o.ClientID))
	return s.reload(ctx, o, "Failed to create order")
}

// Update replaces every mutable field of the order; id and creation time
// are kept.
func (s *OrderService) Update(ctx context.Context, id int64, details domain.Order) (*domain.Order, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Unexpected("Failed to update order", err)
	}
	if cur == nil {
		return nil, domain.NotFoundf("Order not found with id: %d", id)
	}
	details.ID = cur.ID
	details.CreatedAt = cur.CreatedAt
	details.ClientName = ""
	s.normalize(&details)
	if err := s.repo.Save(ctx, &details); err != nil {
		return nil, domain.Unexpected("Failed to update order", err)
	}
	metrics.RecordWrite("order", "update")
	return s.reload(ctx, &details, "Failed to update order")
}

func (s *OrderService) reload(ctx context.Context, o *domain.Order, msg string) (*domain.Order, error) {
	got, err := s.repo.FindByID(ctx, o.ID)
	if err != nil {
		return nil, domain.Unexpected(msg, err)
	}
	if got == nil {
		return o, nil
	}
	return got, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return domain.Unexpected("Failed to delete order", err)
	}
	metrics.RecordWrite("order", "delete")
	return nil
}

func (s *OrderService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, domain.Unexpected("Failed to check order", err)
	}
	return ok, nil
}
