package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShopProduct is the canonical stock record: one row per (shop, subcategory).
// CurrentStock is always denominated in the category's base unit and never
// goes negative. PiecesCount is a secondary discrete counter tracked
// independently of CurrentStock.
type ShopProduct struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shop_product,priority:1" json:"shop_id"`
	Shop          Shop            `gorm:"foreignKey:ShopID" json:"-"`
	SubCategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shop_product,priority:2" json:"subcategory_id"`
	SubCategory   SubCategory     `gorm:"foreignKey:SubCategoryID" json:"subcategory"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(10,2);default:0;not null" json:"current_stock"`
	PiecesCount   int             `gorm:"type:int;default:0;not null" json:"pieces_count"`
	Prices        []ProductPrice  `gorm:"foreignKey:ProductID" json:"prices"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *ShopProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BasePrice returns the price denominated in the category's base unit, or
// zero when no base-unit price row exists.
func (p *ShopProduct) BasePrice() decimal.Decimal {
	baseUnitID := p.SubCategory.Category.BaseUnitID
	for _, price := range p.Prices {
		if price.UnitID == baseUnitID {
			return price.Price
		}
	}
	return decimal.Zero
}

// ProductPrice is the per-unit price list entry for a product. (product, unit)
// is unique.
type ProductPrice struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_price,priority:1" json:"product_id"`
	UnitID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_price,priority:2" json:"unit_id"`
	Unit      Unit            `gorm:"foreignKey:UnitID" json:"unit"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *ProductPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
