package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type CommunityRepository struct{ DB *gorm.DB }

func NewCommunityRepository(db *gorm.DB) *CommunityRepository { return &CommunityRepository{DB: db} }

func (r *CommunityRepository) List(limit int) ([]entity.CommunityPost, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []entity.CommunityPost
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *CommunityRepository) Get(id uint) (*entity.CommunityPost, error) {
	var p entity.CommunityPost
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CommunityRepository) Create(p *entity.CommunityPost) error {
	return r.DB.Create(p).Error
}

func (r *CommunityRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.CommunityPost{}, id).Error
}
