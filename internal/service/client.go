package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/core/cache"
	"github.com/khaoulaLakhdim/orders-management/internal/core/metrics"
	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

// ClientService owns client persistence. Field and uniqueness checks are
// done by callers before Create and Update.
type ClientService struct {
	repo  domain.ClientRepository
	cache *cache.Cache // nil disables caching
	log   *zap.Logger
}

func NewClientService(repo domain.ClientRepository, c *cache.Cache, log *zap.Logger) *ClientService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClientService{repo: repo, cache: c, log: log.Named("client")}
}

const errCodeTaken = "Client code already exists"

func clientKey(id int64) string { return fmt.Sprintf("client:%d", id) }

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	cs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Unexpected("Failed to retrieve clients", err)
	}
	return cs, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return cache.GetOrLoadJSON(ctx, s.cache, clientKey(id), func(ctx context.Context) (*domain.Client, error) {
		c, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, domain.Unexpected("Failed to retrieve client", err)
		}
		if c == nil {
			return nil, domain.NotFound("Client not found")
		}
		return c, nil
	})
}

func (s *ClientService) Create(ctx context.Context, c *domain.Client) error {
	if err := s.repo.Save(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Conflict(errCodeTaken)
		}
		return domain.Unexpected("Failed to create client", err)
	}
	metrics.RecordWrite("client", "create")
	s.log.Debug("client created", zap.Int64("id", c.ID), zap.String("code", c.Code))
	return nil
}

// Update overwrites name, code and city of an existing client.
func (s *ClientService) Update(ctx context.Context, id int64, details domain.Client) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Unexpected("Failed to update client", err)
	}
	if c == nil {
		return nil, domain.NotFoundf("Client not found with id: %d", id)
	}
	c.Name, c.Code, c.City = details.Name, details.Code, details.City
	if err := s.repo.Save(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(errCodeTaken)
		}
		return nil, domain.Unexpected("Failed to update client", err)
	}
	s.cache.Delete(ctx, clientKey(id))
	metrics.RecordWrite("client", "update")
	return c, nil
}

// Delete removes the client and its orders. A missing id is not an error.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return domain.Unexpected("Failed to delete client", err)
	}
	s.cache.Delete(ctx, clientKey(id))
	metrics.RecordWrite("client", "delete")
	s.log.Debug("client deleted", zap.Int64("id", id))
	return nil
}

// EvictAll drops every cached client, used after bulk changes.
func (s *ClientService) EvictAll(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, "client:"); err != nil {
		s.log.Warn("client cache eviction failed", zap.Error(err))
	}
}

func (s *ClientService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, domain.Unexpected("Failed to check client", err)
	}
	return ok, nil
}

func (s *ClientService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	ok, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return false, domain.Unexpected("Failed to check client code", err)
	}
	return ok, nil
}
