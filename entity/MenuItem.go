package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`
	IsFeatured  bool   `gorm:"default:false" json:"isFeatured"`
	Stock       int    `json:"stock"`

	Favorites []Favorite `json:"-"`
	Reviews   []Review   `json:"-"`
}
