package models

// Category represents a product category.
// Categories form a tree through ParentID; a root category has no parent.
type Category struct {
	ID       uint       `gorm:"primaryKey"`
	ParentID *uint      `gorm:"index"`
	Name     string     `gorm:"not null"`
	Slug     string     `gorm:"uniqueIndex;not null"`
	IsActive bool       `gorm:"not null"`
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (c *Category) TableName() string {
	return "categories"
}
