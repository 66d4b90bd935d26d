package models

// User is an account that can authenticate with HTTP Basic credentials.
// The role flags gate what the account may do: customers write reviews,
// suppliers and admins manage the catalog, admins moderate reviews.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	Username       string `gorm:"uniqueIndex;not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	HashedPassword string `gorm:"not null"`
	IsActive       bool   `gorm:"not null"`
	IsAdmin        bool   `gorm:"not null"`
	IsSupplier     bool   `gorm:"not null"`
	IsCustomer     bool   `gorm:"not null"`
}

func (u *User) TableName() string {
	return "users"
}

// Roles is the set of role flags that can be granted to a user.
type Roles struct {
	Admin    bool
	Supplier bool
	Customer bool
}
