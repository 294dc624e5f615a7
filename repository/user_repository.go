package repository

import (
	"errors"

	"backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) Update(u *entity.User) error {
	return r.DB.Save(u).Error
}

// ---------------- Roles ----------------

// ไม่มีแถว role = user ธรรมดา
func (r *UserRepository) GetRole(userID uint) (string, error) {
	var row entity.UserRole
	err := r.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return row.Role, nil
}

// delete-then-insert ตาม flow ของหน้า admin
func (r *UserRepository) SetRole(userID uint, role string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&entity.UserRole{UserID: userID, Role: role}).Error
	})
}

// ---------------- Admin listing ----------------

type ProfileWithRole struct {
	entity.User
	Role string `json:"role"`
}

func (r *UserRepository) ListProfiles() ([]ProfileWithRole, error) {
	var users []entity.User
	if err := r.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	var roles []entity.UserRole
	if err := r.DB.Find(&roles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint]string, len(roles))
	for _, role := range roles {
		byUser[role.UserID] = role.Role
	}

	out := make([]ProfileWithRole, 0, len(users))
	for _, u := range users {
		role := byUser[u.ID]
		if role == "" {
			role = entity.RoleUser
		}
		out = append(out, ProfileWithRole{User: u, Role: role})
	}
	return out, nil
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Count(&n).Error
	return n, err
}
