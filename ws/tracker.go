package ws

import (
	"time"

	"backend/entity"
)

// เก็บ order ล่าสุดไว้แค่ 10 รายการต่อ connection
const trackerCap = 10

// ข้อความแจ้งเตือนตาม status ใหม่ (status ที่ไม่อยู่ใน map = เงียบ)
var statusMessages = map[string]string{
	entity.StatusPreparing: "Your order is being prepared! 👨‍🍳",
	entity.StatusReady:     "Your order is ready for pickup! 🎉",
	entity.StatusDelivered: "Order delivered! Enjoy your meal! 🍽️",
	entity.StatusCancelled: "Your order has been cancelled.",
}

func StatusMessage(status string) string {
	return statusMessages[status]
}

type OrderView struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	TotalAmount  int64     `json:"totalAmount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func viewOf(o *entity.Order) OrderView {
	return OrderView{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// Tracker คือ state ของ order list ฝั่ง client หนึ่ง connection:
// เรียงใหม่สุดก่อน, insert แทรกหัว, update merge ที่เดิมไม่ re-sort
type Tracker struct {
	orders []OrderView
}

func NewTracker(initial []entity.Order) *Tracker {
	t := &Tracker{orders: make([]OrderView, 0, len(initial))}
	for i := range initial {
		if len(t.orders) == trackerCap {
			break
		}
		t.orders = append(t.orders, viewOf(&initial[i]))
	}
	return t
}

func (t *Tracker) Snapshot() []OrderView {
	out := make([]OrderView, len(t.orders))
	copy(out, t.orders)
	return out
}

// ApplyInsert แทรก order ใหม่ไว้หัวลิสต์ ตัดท้ายถ้าเกิน cap
// order ที่มีอยู่แล้ว (event ซ้ำ) = no-op
func (t *Tracker) ApplyInsert(o *entity.Order) bool {
	for i := range t.orders {
		if t.orders[i].ID == o.ID {
			return false
		}
	}
	t.orders = append([]OrderView{viewOf(o)}, t.orders...)
	if len(t.orders) > trackerCap {
		t.orders = t.orders[:trackerCap]
	}
	return true
}

// ApplyUpdate merge ฟิลด์เข้า entry เดิมตาม id (ตำแหน่งคงเดิม)
// event ที่ updated_at เก่ากว่าของที่ถืออยู่ = stale ทิ้งไป (last write wins)
// คืน notice เมื่อ status เปลี่ยนจริงและมีข้อความ map ไว้เท่านั้น
func (t *Tracker) ApplyUpdate(old, updated *entity.Order) (notice string, applied bool) {
	for i := range t.orders {
		if t.orders[i].ID != updated.ID {
			continue
		}
		if updated.UpdatedAt.Before(t.orders[i].UpdatedAt) {
			return "", false
		}
		t.orders[i] = viewOf(updated)
		if old != nil && old.Status != updated.Status {
			notice = statusMessages[updated.Status]
		}
		return notice, true
	}
	return "", false
}
