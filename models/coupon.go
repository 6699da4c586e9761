package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponType represents the type of discount a coupon provides.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFlat       CouponType = "flat"
)

type Coupon struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Type          CouponType     `gorm:"type:varchar(20);not null" json:"type"`
	Value         float64        `gorm:"not null" json:"value"`
	MinOrderValue float64        `gorm:"not null;default:0" json:"min_order_value"`
	UsageLimit    int            `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount     int            `gorm:"not null;default:0" json:"used_count"`
	ExpiresAt     time.Time      `gorm:"not null" json:"expires_at"`
	Active        bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type CreateCouponRequest struct {
	Code          string     `json:"code" binding:"required,min=3,max=64"`
	Type          CouponType `json:"type" binding:"required,oneof=percentage flat"`
	Value         float64    `json:"value" binding:"required,gte=0"`
	MinOrderValue float64    `json:"min_order_value" binding:"gte=0"`
	UsageLimit    int        `json:"usage_limit" binding:"gte=0"`
	ExpiresAt     time.Time  `json:"expires_at" binding:"required"`
}
