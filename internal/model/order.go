package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a point-of-sale sale composed of line items. Totals are computed
// at creation time; the stock side effect goes through the same engine the
// transaction ledger uses.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop          Shop            `gorm:"foreignKey:ShopID" json:"-"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderDate     time.Time       `gorm:"autoCreateTime;index" json:"order_date"`
	PaymentMethod string          `gorm:"type:varchar(10);not null" json:"payment_method"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);default:0;not null" json:"discount_total"`
	FinalTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_total"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0;not null" json:"due_amount"`
	IsPaid        bool            `gorm:"default:true" json:"is_paid"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one product line of an order. Quantity is in base units;
// TotalPrice = round(quantity * unit_price, 2) - discount.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    ShopProduct     `gorm:"foreignKey:ProductID" json:"-"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);default:0;not null" json:"discount"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
