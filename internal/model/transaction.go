package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType values
const (
	TxTypeBuy  = "BUY"
	TxTypeSell = "SELL"
)

// PaymentMethod values
const (
	PaymentCash   = "CASH"
	PaymentBank   = "BANK"
	PaymentMobile = "MOBILE"
	PaymentDue    = "DUE"
)

// Transaction is one purchase or sale event against a shop. The monetary
// total is derived from its items, never stored.
type Transaction struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop              Shop              `gorm:"foreignKey:ShopID" json:"-"`
	TransactionType   string            `gorm:"type:varchar(4);not null;index" json:"transaction_type"` // BUY, SELL
	TransactionDate   time.Time         `gorm:"not null;index" json:"transaction_date"`
	PaymentMethod     string            `gorm:"type:varchar(10);default:'CASH';not null" json:"payment_method"`
	IsPaid            bool              `gorm:"default:true" json:"is_paid"`
	DueAmount         decimal.Decimal   `gorm:"type:decimal(12,2);default:0;not null" json:"due_amount"`
	DueDate           *time.Time        `json:"due_date"`
	Notes             string            `gorm:"type:text" json:"notes"`
	SupplierID        *uuid.UUID        `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier          *Supplier         `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	ExternalPartyName string            `gorm:"type:varchar(255)" json:"external_party_name"`
	Items             []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	return nil
}

// TotalAmount sums the stored item totals.
func (t *Transaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// TransactionItem is one product line of a transaction. Quantity is in the
// given unit, not necessarily the category base unit; TotalPrice is stored,
// recomputed as round(quantity * price_per_unit, 2) whenever the item is
// written. BasePriceAtTransaction snapshots the product's base price at
// creation time and is never overwritten.
type TransactionItem struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product                ShopProduct     `gorm:"foreignKey:ProductID" json:"-"`
	UnitID                 uuid.UUID       `gorm:"type:uuid;not null" json:"unit_id"`
	Unit                   Unit            `gorm:"foreignKey:UnitID" json:"unit"`
	Quantity               decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	PricePerUnit           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_unit"`
	TotalPrice             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	BasePriceAtTransaction decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"base_price_at_transaction"`
	PiecesCount            *int            `gorm:"type:int" json:"pieces_count"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
