package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

// saveErr marks unique-index violations as domain conflicts.
func saveErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}

// first loads one row into dst; a missing row yields (false, nil).
func first(ctx context.Context, db *gorm.DB, dst any, query string, args ...any) (bool, error) {
	err := db.WithContext(ctx).Where(query, args...).Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&n).Error
	return n > 0, err
}

func count(ctx context.Context, db *gorm.DB, model any) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}

// deleteAll bypasses GORM's guard against unconditioned deletes.
func deleteAll(db *gorm.DB, model any) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
}
