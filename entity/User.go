package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`

	// preload เฉพาะตอนจำเป็น
	Orders    []Order    `json:"-"`
	Favorites []Favorite `json:"-"`
	Reviews   []Review   `json:"-"`
	Role      *UserRole  `gorm:"foreignKey:UserID" json:"-"`
}
