package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Review is a customer's rating and comment for a product.
// Reviews are never removed; moderation flips IsActive.
type Review struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;index"`
	User      User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID uint            `gorm:"not null;index"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rating    decimal.Decimal `gorm:"type:numeric(4,2);not null"`
	Comment   string          `gorm:"size:255;not null"`
	CreatedAt time.Time       `gorm:"column:comment_date;autoCreateTime"`
	IsActive  bool            `gorm:"not null"`
}

func (r *Review) TableName() string {
	return "reviews"
}
