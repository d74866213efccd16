package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit is a unit of measure. ConversionToBase expresses how many base units
// one of this unit holds (1 Dozen = 12 Piece -> 12).
type Unit struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(50);not null" json:"name"`
	Symbol           string          `gorm:"type:varchar(10);not null" json:"symbol"`
	IsCountable      bool            `gorm:"default:false" json:"is_countable"`
	ConversionToBase decimal.Decimal `gorm:"type:decimal(10,2);default:1;not null" json:"conversion_to_base"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Category groups products under a base unit. All stock for products in a
// category is stored in base-unit terms; TransactionUnits is the set of units
// transactions against the category may be denominated in.
type Category struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	BaseUnitID       uuid.UUID `gorm:"type:uuid;not null" json:"base_unit_id"`
	BaseUnit         Unit      `gorm:"foreignKey:BaseUnitID" json:"base_unit"`
	TransactionUnits []Unit    `gorm:"many2many:category_transaction_units" json:"transaction_units"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// RequiresWeightTracking reports whether stock in this category is tracked by
// weight rather than by discrete pieces.
func (c *Category) RequiresWeightTracking() bool {
	return !c.BaseUnit.IsCountable
}

// SubCategory is a concrete product kind within a category. (category, name)
// is unique.
type SubCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subcategory_category_name,priority:1" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_subcategory_category_name,priority:2" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *SubCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
