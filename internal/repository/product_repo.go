package repository

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.ShopProduct) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ShopProduct, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ShopProduct, error)
	FindByShopAndSubCategory(ctx context.Context, shopID, subCategoryID uuid.UUID) (*model.ShopProduct, error)
	List(ctx context.Context, shopID uuid.UUID, categoryID *uuid.UUID, page, limit int) ([]model.ShopProduct, int64, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal, pieces int) error
	UpsertPrice(ctx context.Context, price *model.ProductPrice) error
	ListPrices(ctx context.Context, productID uuid.UUID) ([]model.ProductPrice, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.ShopProduct) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ShopProduct, error) {
	var product model.ShopProduct
	if err := GetDB(ctx, r.db).
		Preload("SubCategory").
		Preload("SubCategory.Category").
		Preload("SubCategory.Category.BaseUnit").
		Preload("SubCategory.Category.TransactionUnits").
		Preload("Prices").
		Preload("Prices.Unit").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate locks the product row for the duration of the enclosing
// transaction. Stock reads that precede a mutation must come through here.
// sqlite (used in tests) has no row locks; its single-writer lock serializes
// writers there instead.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ShopProduct, error) {
	db := GetDB(ctx, r.db)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product model.ShopProduct
	if err := db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByShopAndSubCategory(ctx context.Context, shopID, subCategoryID uuid.UUID) (*model.ShopProduct, error) {
	var product model.ShopProduct
	if err := GetDB(ctx, r.db).
		Where("shop_id = ? AND sub_category_id = ?", shopID, subCategoryID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, shopID uuid.UUID, categoryID *uuid.UUID, page, limit int) ([]model.ShopProduct, int64, error) {
	var products []model.ShopProduct
	var total int64

	db := GetDB(ctx, r.db).Model(&model.ShopProduct{}).Where("shop_id = ?", shopID)
	if categoryID != nil {
		db = db.Joins("JOIN sub_categories ON sub_categories.id = shop_products.sub_category_id").
			Where("sub_categories.category_id = ?", *categoryID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("SubCategory").
		Preload("SubCategory.Category").
		Preload("SubCategory.Category.BaseUnit").
		Preload("SubCategory.Category.TransactionUnits").
		Preload("Prices").
		Preload("Prices.Unit").
		Order("shop_products.created_at desc").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal, pieces int) error {
	return GetDB(ctx, r.db).Model(&model.ShopProduct{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": stock,
			"pieces_count":  pieces,
		}).Error
}

func (r *productRepository) UpsertPrice(ctx context.Context, price *model.ProductPrice) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "unit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(price).Error
}

func (r *productRepository) ListPrices(ctx context.Context, productID uuid.UUID) ([]model.ProductPrice, error) {
	var prices []model.ProductPrice
	if err := GetDB(ctx, r.db).
		Preload("Unit").
		Where("product_id = ?", productID).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}
