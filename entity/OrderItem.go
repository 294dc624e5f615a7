package entity

import (
	"gorm.io/gorm"
)

// Price คือ snapshot ณ ตอนสั่ง ไม่ตามราคาเมนูปัจจุบัน
type OrderItem struct {
	gorm.Model
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload เฉพาะตอนต้องการชื่อเมนู
}
