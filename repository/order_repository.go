package repository

import (
	"backend/entity"
	"strings"
	"time"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// รายการ order ของ user ล่าสุดก่อน (ใช้ทั้ง REST และ snapshot ของ ws tracker)
func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

// ค้นหา order ของ user จาก substring ของ status
func (r *OrderRepository) SearchOrdersForUser(userID uint, q string, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 3
	}
	var out []entity.Order
	err := r.DB.Where("user_id = ? AND LOWER(status) LIKE ?", userID, "%"+strings.ToLower(q)+"%").
		Order("created_at DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

// ---------------- Admin listing ----------------

type AdminOrderSummary struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	TotalAmount   int64     `json:"totalAmount"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrders(status string, page, limit int) ([]AdminOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{})
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []AdminOrderSummary
	err := q.Select("id, user_id, customer_name, customer_phone, total_amount, status, notes, created_at").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

func (r *OrderRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS n").Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

// ---------------- Status updates ----------------

// guard ที่ WHERE status กันเขียนทับ transition ที่แข่งกันมา
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// header ที่เขียนสำเร็จแต่ lines ล้ม → ปิดทิ้งพร้อม note ไว้ตามเก็บ
func (r *OrderRepository) MarkOrphaned(orderID uint) error {
	return r.DB.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status": entity.StatusCancelled,
			"notes":  "orphaned: order items were not written",
		}).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, quantity, price, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}
