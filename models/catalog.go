package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ParentID  *uuid.UUID     `gorm:"type:uuid" json:"parent_id,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	SKU           string         `gorm:"type:varchar(64);uniqueIndex" json:"sku"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Images        []string       `gorm:"type:text[];serializer:json" json:"images"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived from reviews; never persisted.
	AverageRating float64 `gorm:"-" json:"average_rating"`
	ReviewCount   int64   `gorm:"-" json:"review_count"`
}

type ProductCreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	SKU         string     `json:"sku" binding:"required"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	Stock       int        `json:"stock" binding:"gte=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Images      []string   `json:"images"`
}

type ProductUpdateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,gt=0"`
	Stock       *int       `json:"stock" binding:"omitempty,gte=0"`
	IsActive    *bool      `json:"is_active"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Images      []string   `json:"images"`
}
