package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is the tenant boundary: every product, transaction and report is
// scoped to one shop, owned by one user.
type Shop struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"-"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	District  string         `gorm:"type:varchar(100)" json:"district"`
	Upazila   string         `gorm:"type:varchar(100)" json:"upazila"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"type:varchar(15)" json:"phone"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
