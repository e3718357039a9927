package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

type ClientRepo struct{ db *gorm.DB }

func NewClientRepo(db *gorm.DB) *ClientRepo { return &ClientRepo{db: db} }

var _ domain.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) FindAll(ctx context.Context) ([]domain.Client, error) {
	cs := []domain.Client{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *ClientRepo) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	ok, err := first(ctx, r.db, &c, "id = ?", id)
	if !ok {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) FindByCode(ctx context.Context, code string) (*domain.Client, error) {
	var c domain.Client
	ok, err := first(ctx, r.db, &c, "code = ?", code)
	if !ok {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &domain.Client{}, "id = ?", id)
}

func (r *ClientRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(ctx, r.db, &domain.Client{}, "code = ?", code)
}

func (r *ClientRepo) Save(ctx context.Context, c *domain.Client) error {
	if c.ID == 0 {
		return saveErr(r.db.WithContext(ctx).Create(c).Error)
	}
	return saveErr(r.db.WithContext(ctx).Save(c).Error)
}

func (r *ClientRepo) SaveAll(ctx context.Context, cs []domain.Client) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(cs, 200).Error
}

// DeleteByID removes the client's orders and then the client in one
// transaction.
func (r *ClientRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&domain.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Client{}, id).Error
	})
}

func (r *ClientRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx, &domain.Order{}); err != nil {
			return err
		}
		return deleteAll(tx, &domain.Client{})
	})
}

func (r *ClientRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.Client{})
}
