package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	ok, err := first(ctx, r.db, &u, "id = ?", id)
	if !ok {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	ok, err := first(ctx, r.db, &u, "username = ?", username)
	if !ok {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &domain.User{}, "id = ?", id)
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, &domain.User{}, "username = ?", username)
}

func (r *UserRepo) Save(ctx context.Context, u *domain.User) error {
	if u.ID == 0 {
		return saveErr(r.db.WithContext(ctx).Create(u).Error)
	}
	return saveErr(r.db.WithContext(ctx).Save(u).Error)
}

func (r *UserRepo) SaveAll(ctx context.Context, us []domain.User) error {
	if len(us) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(us, 200).Error
}

func (r *UserRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (r *UserRepo) DeleteAll(ctx context.Context) error {
	return deleteAll(r.db.WithContext(ctx), &domain.User{})
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, &domain.User{})
}
