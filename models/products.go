package models

// Product represents a product in the catalog.
// Rating is derived from the product's active reviews and is only written
// by RecomputeRating.
type Product struct {
	ID          uint     `gorm:"primaryKey"`
	Name        string   `gorm:"not null"`
	Slug        string   `gorm:"uniqueIndex;not null"`
	Description string   `gorm:"not null"`
	Price       int      `gorm:"not null"`
	ImageURL    string   `gorm:"not null"`
	Stock       int      `gorm:"not null"`
	SupplierID  *uint    `gorm:"index"`
	Supplier    *User    `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
	Rating      float64  `gorm:"type:double precision;not null;default:0"`
	IsActive    bool     `gorm:"not null"`
	CategoryID  uint     `gorm:"not null;index"`
	Category    Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "products"
}
