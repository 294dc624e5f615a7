package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type FavoriteRepository struct{ DB *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository { return &FavoriteRepository{DB: db} }

func (r *FavoriteRepository) ListItemIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("menu_item_id", &ids).Error
	return ids, err
}

func (r *FavoriteRepository) Insert(userID, menuItemID uint) error {
	return r.DB.Create(&entity.Favorite{UserID: userID, MenuItemID: menuItemID}).Error
}

func (r *FavoriteRepository) Delete(userID, menuItemID uint) error {
	return r.DB.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&entity.Favorite{}).Error
}
