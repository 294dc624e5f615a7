package entity

import (
	"gorm.io/gorm"
)

type CommunityPost struct {
	gorm.Model
	Content  string `gorm:"not null" json:"content"`
	ImageURL string `json:"imageUrl"`
	Likes    int    `json:"likes"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`
}
