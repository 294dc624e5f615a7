package repository

import (
	"backend/entity"
	"time"

	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rv *entity.Review) error {
	return r.DB.Create(rv).Error
}

type ReviewRow struct {
	ID         uint      `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	MenuItemID uint      `json:"menuItemId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *ReviewRepository) ListForItem(menuItemID uint) ([]ReviewRow, error) {
	var out []ReviewRow
	err := r.DB.Table("reviews AS r").
		Select("r.id, r.rating, r.comment, r.menu_item_id, u.full_name AS author_name, r.created_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.menu_item_id = ? AND r.deleted_at IS NULL", menuItemID).
		Order("r.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *ReviewRepository) ListAll() ([]ReviewRow, error) {
	var out []ReviewRow
	err := r.DB.Table("reviews AS r").
		Select("r.id, r.rating, r.comment, r.menu_item_id, u.full_name AS author_name, r.created_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.deleted_at IS NULL").
		Order("r.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *ReviewRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Review{}, id).Error
}
