package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// role แยกจาก profile: สิทธิ์ตัดสินจากแถวในตารางนี้เท่านั้น
type UserRole struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex" json:"userId"`
	Role   string `gorm:"not null;default:user" json:"role"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
