package repository

import (
	"context"
	"errors"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const emptyCart = "{}"

type CartRepository interface {
	// Clear replaces the user's cart snapshot with an empty one. Clearing an
	// already empty or absent cart succeeds.
	Clear(ctx context.Context, userID string) error
	Replace(ctx context.Context, userID, data string) error
	Get(ctx context.Context, userID string) (string, error)
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Clear(ctx context.Context, userID string) error {
	return r.Replace(ctx, userID, emptyCart)
}

func (r *cartRepoImpl) Replace(ctx context.Context, userID, data string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data":       data,
			"updated_at": time.Now(),
		}),
	}).Create(&model.UserCart{
		UserID: userID,
		Data:   data,
	}).Error
}

func (r *cartRepoImpl) Get(ctx context.Context, userID string) (string, error) {
	var cart model.UserCart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCart, nil
		}
		return "", err
	}

	return cart.Data, nil
}
