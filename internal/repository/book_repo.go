package repository

import (
	"context"
	"time"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRepository covers the cost and loss books: categorized, dated amount
// records per shop.
type BookRepository interface {
	CreateCostCategory(ctx context.Context, category *model.CostCategory) error
	ListCostCategories(ctx context.Context) ([]model.CostCategory, error)
	CreateCostEntry(ctx context.Context, entry *model.CostEntry) error
	ListCostEntries(ctx context.Context, shopID uuid.UUID, start, end *time.Time, page, limit int) ([]model.CostEntry, int64, error)

	CreateLossCategory(ctx context.Context, category *model.LossCategory) error
	ListLossCategories(ctx context.Context) ([]model.LossCategory, error)
	CreateLossEntry(ctx context.Context, entry *model.LossEntry) error
	ListLossEntries(ctx context.Context, shopID uuid.UUID, start, end *time.Time, page, limit int) ([]model.LossEntry, int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) CreateCostCategory(ctx context.Context, category *model.CostCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *bookRepository) ListCostCategories(ctx context.Context) ([]model.CostCategory, error) {
	var categories []model.CostCategory
	if err := GetDB(ctx, r.db).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *bookRepository) CreateCostEntry(ctx context.Context, entry *model.CostEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *bookRepository) ListCostEntries(ctx context.Context, shopID uuid.UUID, start, end *time.Time, page, limit int) ([]model.CostEntry, int64, error) {
	var entries []model.CostEntry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.CostEntry{}).Where("shop_id = ?", shopID)
	if start != nil {
		db = db.Where("date >= ?", *start)
	}
	if end != nil {
		db = db.Where("date <= ?", *end)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("CostCategory").Order("date desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *bookRepository) CreateLossCategory(ctx context.Context, category *model.LossCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *bookRepository) ListLossCategories(ctx context.Context) ([]model.LossCategory, error) {
	var categories []model.LossCategory
	if err := GetDB(ctx, r.db).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *bookRepository) CreateLossEntry(ctx context.Context, entry *model.LossEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *bookRepository) ListLossEntries(ctx context.Context, shopID uuid.UUID, start, end *time.Time, page, limit int) ([]model.LossEntry, int64, error) {
	var entries []model.LossEntry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.LossEntry{}).Where("shop_id = ?", shopID)
	if start != nil {
		db = db.Where("date >= ?", *start)
	}
	if end != nil {
		db = db.Where("date <= ?", *end)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("LossCategory").Order("date desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
