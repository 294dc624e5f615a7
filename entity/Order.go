package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Subtotal      int64  `json:"subtotal"`
	DeliveryFee   int64  `json:"deliveryFee"`
	TotalAmount   int64  `json:"totalAmount"`
	Status        string `gorm:"not null;default:pending" json:"status"`
	Notes         string `json:"notes"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"` // preload เฉพาะตอนต้องการ user detail

	// preload แค่ตอน detail
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
}
