package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a shop's purchase counterparty.
type Supplier struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop      Shop           `gorm:"foreignKey:ShopID" json:"-"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(15)" json:"phone"`
	Address   string         `gorm:"type:text" json:"address"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Customer is a shop's sale counterparty for orders.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ShopID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Shop      Shop           `gorm:"foreignKey:ShopID" json:"-"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(15)" json:"phone"`
	Address   string         `gorm:"type:text" json:"address"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
