package repository

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shop, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Shop, int64, error)
	Update(ctx context.Context, shop *model.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *model.Shop) error {
	return GetDB(ctx, r.db).Create(shop).Error
}

func (r *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Shop, error) {
	var shop model.Shop
	if err := GetDB(ctx, r.db).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Shop{}).Where("owner_id = ?", ownerID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&shops).Error; err != nil {
		return nil, 0, err
	}

	return shops, total, nil
}

func (r *shopRepository) Update(ctx context.Context, shop *model.Shop) error {
	return GetDB(ctx, r.db).Save(shop).Error
}

func (r *shopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Shop{}).Error
}
