package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Line1      string         `gorm:"type:varchar(255);not null" json:"line1"`
	Line2      string         `gorm:"type:varchar(255)" json:"line2,omitempty"`
	City       string         `gorm:"type:varchar(100);not null" json:"city"`
	State      string         `gorm:"type:varchar(100)" json:"state,omitempty"`
	PostalCode string         `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country    string         `gorm:"type:varchar(100);not null" json:"country"`
	IsDefault  bool           `gorm:"not null;default:false" json:"is_default"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type AddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}
