package model

import (
	"time"
)

// PeriodSummary aggregates a shop's financial activity over a time window.
// Monetary values are decimal strings.
type PeriodSummary struct {
	ShopID             string           `json:"shop_id"`
	TotalPurchases     string           `json:"total_purchases"`
	PurchaseCount      int              `json:"purchase_count"`
	TotalSales         string           `json:"total_sales"`
	SaleCount          int              `json:"sale_count"`
	TotalOrderRevenue  string           `json:"total_order_revenue"`
	OrderCount         int              `json:"order_count"`
	TotalCosts         string           `json:"total_costs"`
	TotalLosses        string           `json:"total_losses"`
	TotalDue           string           `json:"total_due"`
	TopSoldProducts    []ProductRanking `json:"top_sold_products"`
	TimeRangeStartDate time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time        `json:"time_range_end_date"`
}

// ProductRanking represents a ranked product based on accumulated quantities
type ProductRanking struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity string `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
}
