package repository

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository covers the read-mostly reference data: units, categories
// and subcategories. No locking is ever taken on these rows.
type CatalogRepository interface {
	CreateUnit(ctx context.Context, unit *model.Unit) error
	FindUnitByID(ctx context.Context, id uuid.UUID) (*model.Unit, error)
	ListUnits(ctx context.Context) ([]model.Unit, error)

	CreateCategory(ctx context.Context, category *model.Category) error
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ReplaceTransactionUnits(ctx context.Context, category *model.Category, units []model.Unit) error

	CreateSubCategory(ctx context.Context, sub *model.SubCategory) error
	FindSubCategoryByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error)
	ListSubCategories(ctx context.Context, categoryID *uuid.UUID) ([]model.SubCategory, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateUnit(ctx context.Context, unit *model.Unit) error {
	return GetDB(ctx, r.db).Create(unit).Error
}

func (r *catalogRepository) FindUnitByID(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := GetDB(ctx, r.db).First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *catalogRepository) ListUnits(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	if err := GetDB(ctx, r.db).Order("name").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *catalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).
		Preload("BaseUnit").
		Preload("TransactionUnits").
		First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := GetDB(ctx, r.db).
		Preload("BaseUnit").
		Preload("TransactionUnits").
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) ReplaceTransactionUnits(ctx context.Context, category *model.Category, units []model.Unit) error {
	return GetDB(ctx, r.db).Model(category).Association("TransactionUnits").Replace(units)
}

func (r *catalogRepository) CreateSubCategory(ctx context.Context, sub *model.SubCategory) error {
	return GetDB(ctx, r.db).Create(sub).Error
}

func (r *catalogRepository) FindSubCategoryByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error) {
	var sub model.SubCategory
	if err := GetDB(ctx, r.db).
		Preload("Category").
		Preload("Category.BaseUnit").
		Preload("Category.TransactionUnits").
		First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *catalogRepository) ListSubCategories(ctx context.Context, categoryID *uuid.UUID) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	db := GetDB(ctx, r.db).Preload("Category").Preload("Category.BaseUnit")
	if categoryID != nil {
		db = db.Where("category_id = ?", *categoryID)
	}
	if err := db.Order("name").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
