package repository

import (
	"backend/entity"
	"strings"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) Get(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) List(category string, availableOnly bool) ([]entity.MenuItem, error) {
	q := r.DB.Model(&entity.MenuItem{})
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var out []entity.MenuItem
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *MenuRepository) Featured() ([]entity.MenuItem, error) {
	var out []entity.MenuItem
	err := r.DB.Where("is_featured = ? AND is_available = ?", true, true).
		Order("name ASC").Find(&out).Error
	return out, err
}

// substring match ที่ name/description/category (fallback ตอนไม่มี Elasticsearch)
func (r *MenuRepository) Search(q string, limit int) ([]entity.MenuItem, error) {
	if limit <= 0 {
		limit = 5
	}
	pat := "%" + strings.ToLower(q) + "%"
	var out []entity.MenuItem
	err := r.DB.Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", pat, pat, pat).
		Limit(limit).Find(&out).Error
	return out, err
}

// ค้นเฉพาะใน id ที่ระบุ (ใช้กับ favorites)
func (r *MenuRepository) SearchWithin(ids []uint, q string, limit int) ([]entity.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}
	pat := "%" + strings.ToLower(q) + "%"
	var out []entity.MenuItem
	err := r.DB.Where("id IN ?", ids).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pat, pat).
		Limit(limit).Find(&out).Error
	return out, err
}

// ---------------- Admin CRUD ----------------

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Update(m *entity.MenuItem) error {
	return r.DB.Save(m).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

func (r *MenuRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.MenuItem{}).Count(&n).Error
	return n, err
}
