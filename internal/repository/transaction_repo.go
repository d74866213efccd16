package repository

import (
	"context"
	"time"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows the ledger listing.
type TransactionFilter struct {
	ShopID          uuid.UUID
	TransactionType string
	Start           *time.Time
	End             *time.Time
	Page            int
	Limit           int
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	CreateItem(ctx context.Context, item *model.TransactionItem) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	return GetDB(ctx, r.db).Create(transaction).Error
}

func (r *transactionRepository) CreateItem(ctx context.Context, item *model.TransactionItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *transactionRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Items.Unit").
		Preload("Supplier").
		First(&transaction, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Transaction{}).Where("shop_id = ?", filter.ShopID)
	if filter.TransactionType != "" {
		db = db.Where("transaction_type = ?", filter.TransactionType)
	}
	if filter.Start != nil {
		db = db.Where("transaction_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		db = db.Where("transaction_date <= ?", *filter.End)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.
		Preload("Items").
		Preload("Items.Unit").
		Preload("Supplier").
		Order("transaction_date desc").
		Offset(offset).Limit(filter.Limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
