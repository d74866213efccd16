package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostCategory labels operating-cost entries (rent, electricity, transport).
type CostCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *CostCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CostEntry is one dated cost record for a shop.
type CostEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop           Shop            `gorm:"foreignKey:ShopID" json:"-"`
	CostCategoryID uuid.UUID       `gorm:"type:uuid;not null" json:"cost_category_id"`
	CostCategory   CostCategory    `gorm:"foreignKey:CostCategoryID" json:"cost_category"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description    string          `gorm:"type:text" json:"description"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (c *CostEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// LossCategory labels loss entries (damage, theft, expiry).
type LossCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *LossCategory) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LossEntry is one dated loss record for a shop.
type LossEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop           Shop            `gorm:"foreignKey:ShopID" json:"-"`
	LossCategoryID uuid.UUID       `gorm:"type:uuid;not null" json:"loss_category_id"`
	LossCategory   LossCategory    `gorm:"foreignKey:LossCategoryID" json:"loss_category"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description    string          `gorm:"type:text" json:"description"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (l *LossEntry) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
