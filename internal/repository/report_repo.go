package repository

import (
	"context"
	"fmt"
	"time"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregations behind period summaries.
// Sums come back as strings so decimal precision survives the scan.
type ReportRepository interface {
	SumTransactions(ctx context.Context, shopID uuid.UUID, transactionType string, start, end time.Time) (value string, count int, err error)
	SumTransactionDue(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error)
	SumOrders(ctx context.Context, shopID uuid.UUID, start, end time.Time) (value string, count int, err error)
	SumCosts(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error)
	SumLosses(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error)
	TopSoldProducts(ctx context.Context, shopID uuid.UUID, start, end time.Time, limit int) ([]model.ProductRanking, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SumTransactions(ctx context.Context, shopID uuid.UUID, transactionType string, start, end time.Time) (string, int, error) {
	var result struct {
		Value string
		Count int
	}
	if err := GetDB(ctx, r.db).Table("transaction_items").
		Select("COALESCE(CAST(SUM(transaction_items.total_price) AS TEXT), '0') as value, COUNT(DISTINCT transactions.id) as count").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transactions.shop_id = ? AND transactions.transaction_type = ? AND transactions.transaction_date >= ? AND transactions.transaction_date <= ?",
			shopID, transactionType, start, end).
		Scan(&result).Error; err != nil {
		return "0", 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return result.Value, result.Count, nil
}

func (r *reportRepository) SumTransactionDue(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error) {
	var value string
	if err := GetDB(ctx, r.db).Model(&model.Transaction{}).
		Select("COALESCE(CAST(SUM(due_amount) AS TEXT), '0')").
		Where("shop_id = ? AND is_paid = ? AND transaction_date >= ? AND transaction_date <= ?", shopID, false, start, end).
		Scan(&value).Error; err != nil {
		return "0", fmt.Errorf("failed to sum due amounts: %w", err)
	}
	return value, nil
}

func (r *reportRepository) SumOrders(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, int, error) {
	var result struct {
		Value string
		Count int
	}
	if err := GetDB(ctx, r.db).Table("orders").
		Select("COALESCE(CAST(SUM(final_total) AS TEXT), '0') as value, COUNT(id) as count").
		Where("shop_id = ? AND order_date >= ? AND order_date <= ?", shopID, start, end).
		Scan(&result).Error; err != nil {
		return "0", 0, fmt.Errorf("failed to sum orders: %w", err)
	}
	return result.Value, result.Count, nil
}

func (r *reportRepository) SumCosts(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error) {
	var value string
	if err := GetDB(ctx, r.db).Model(&model.CostEntry{}).
		Select("COALESCE(CAST(SUM(amount) AS TEXT), '0')").
		Where("shop_id = ? AND date >= ? AND date <= ?", shopID, start, end).
		Scan(&value).Error; err != nil {
		return "0", fmt.Errorf("failed to sum costs: %w", err)
	}
	return value, nil
}

func (r *reportRepository) SumLosses(ctx context.Context, shopID uuid.UUID, start, end time.Time) (string, error) {
	var value string
	if err := GetDB(ctx, r.db).Model(&model.LossEntry{}).
		Select("COALESCE(CAST(SUM(amount) AS TEXT), '0')").
		Where("shop_id = ? AND date >= ? AND date <= ?", shopID, start, end).
		Scan(&value).Error; err != nil {
		return "0", fmt.Errorf("failed to sum losses: %w", err)
	}
	return value, nil
}

func (r *reportRepository) TopSoldProducts(ctx context.Context, shopID uuid.UUID, start, end time.Time, limit int) ([]model.ProductRanking, error) {
	var rankings []model.ProductRanking
	if err := GetDB(ctx, r.db).Table("transaction_items").
		Select("shop_products.id as product_id, sub_categories.name as product_name, CAST(SUM(transaction_items.quantity) AS TEXT) as total_quantity, CAST(SUM(transaction_items.total_price) AS TEXT) as total_value").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Joins("JOIN shop_products ON shop_products.id = transaction_items.product_id").
		Joins("JOIN sub_categories ON sub_categories.id = shop_products.sub_category_id").
		Where("transactions.shop_id = ? AND transactions.transaction_type = ? AND transactions.transaction_date >= ? AND transactions.transaction_date <= ?",
			shopID, model.TxTypeSell, start, end).
		Group("shop_products.id, sub_categories.name").
		Order("total_value DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	return rankings, nil
}
