package entity

import (
	"gorm.io/gorm"
)

type Favorite struct {
	gorm.Model
	UserID     uint `gorm:"uniqueIndex:idx_fav_user_item" json:"userId"`
	MenuItemID uint `gorm:"uniqueIndex:idx_fav_user_item" json:"menuItemId"`

	User     User     `json:"-"`
	MenuItem MenuItem `json:"-"`
}
