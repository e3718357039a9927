package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

var _ domain.OrderRepository = (*OrderRepo)(nil)

// withClient selects orders together with the owning client's name.
func (r *OrderRepo) withClient(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("orders.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = orders.client_id")
}

func (r *OrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := r.withClient(ctx).Order("orders.id asc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) FindPage(ctx context.Context, p domain.PageRequest) (domain.Page[domain.Order], error) {
	return r.page(ctx, p, nil)
}

func (r *OrderRepo) FindByClientID(ctx context.Context, clientID int64, p domain.PageRequest) (domain.Page[domain.Order], error) {
	return r.page(ctx, p, &clientID)
}

func (r *OrderRepo) page(ctx context.Context, p domain.PageRequest, clientID *int64) (domain.Page[domain.Order], error) {
	cnt := r.db.WithContext(ctx).Model(&domain.Order{})
	q := r.withClient(ctx)
	if clientID != nil {
		cnt = cnt.Where("client_id = ?", *clientID)
		q = q.Where("orders.client_id = ?", *clientID)
	}
	var total int64
	if err := cnt.Count(&total).Error; err != nil {
		return domain.Page[domain.Order]{}, err
	}
	var orders []domain.Order
	if err := q.Order("orders.id asc").Offset(p.Offset()).Limit(p.Size).Find(&orders).Error; err != nil {
		return domain.Page[domain.Order]{}, err
	}
	return domain.NewPage(orders, p, total), nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.withClient(ctx).Where("orders.id = ?", id).Limit(1).Find(&o).Error
	if err != nil || o.ID == 0 {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &domain.Order{}, "id = ?", id)
}

func (r *OrderRepo) Save(ctx context.Context, o *domain.Order) error {
	if o.ID == 0 {
		return r.db.WithContext(ctx).Create(o).Error
	}
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepo) SaveAll(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(orders, 200).Error
}

func (r *OrderRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}

func (r *OrderRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &domain.Order{})
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.Order{})
}
