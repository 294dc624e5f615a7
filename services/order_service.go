package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"backend/entity"
	"backend/pkg/eventbus"
	"backend/repository"

	"gorm.io/gorm"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("order submission already in progress")
)

// ค่าส่งคงที่ 30 ฟรีเมื่อยอดเกิน 300 (นโยบายร้าน ไม่ใช่ค่า derived)
const (
	freeDeliveryOver = int64(300)
	flatDeliveryFee  = int64(30)
)

func DeliveryFee(subtotal int64) int64 {
	if subtotal > freeDeliveryOver {
		return 0
	}
	return flatDeliveryFee
}

// OrderEventSink รับ event หลัง commit แล้ว (ws hub implement ตัวนี้)
type OrderEventSink interface {
	OrderCreated(o *entity.Order)
	OrderStatusChanged(old, updated *entity.Order)
}

type OrderService struct {
	DB    *gorm.DB
	Repo  *repository.OrderRepository
	Users *repository.UserRepository
	Cart  *CartStore
	Sink  OrderEventSink     // nil ได้
	Bus   *eventbus.Producer // nil ได้

	mu       sync.Mutex
	inFlight map[uint]bool
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	users *repository.UserRepository,
	cart *CartStore,
) *OrderService {
	return &OrderService{
		DB:       db,
		Repo:     repo,
		Users:    users,
		Cart:     cart,
		inFlight: make(map[uint]bool),
	}
}

type SubmitResult struct {
	ID          uint  `json:"id"`
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	TotalAmount int64 `json:"totalAmount"`
}

// SubmitFromCart เปลี่ยนตะกร้าเป็น order header + lines
//
// เขียนสองจังหวะ: header ก่อน แล้วค่อย lines ใน tx ของมันเอง
// ถ้า lines ล้ม → header ถูก mark เป็น orphaned และ "ไม่ล้างตะกร้า"
// ให้ user กดส่งใหม่ได้ (ไม่มี auto-retry, submit ซ้อนโดนกัน 1 ครั้งต่อ user)
func (s *OrderService) SubmitFromCart(ctx context.Context, userID uint) (*SubmitResult, error) {
	s.mu.Lock()
	if s.inFlight[userID] {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight[userID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, userID)
		s.mu.Unlock()
	}()

	lines := s.Cart.Lines(userID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	customerName := user.FullName
	if customerName == "" {
		customerName = user.Email
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.Price * int64(line.Quantity)
	}
	fee := DeliveryFee(subtotal)

	order := entity.Order{
		CustomerName:  customerName,
		CustomerPhone: user.Phone,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		TotalAmount:   subtotal + fee,
		Status:        entity.StatusPending,
		UserID:        userID,
	}
	if err := s.Repo.CreateOrder(s.DB, &order); err != nil {
		// header ไม่เกิด → ตะกร้าไม่ถูกแตะ
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				Price:      line.Price, // snapshot จากตะกร้า ไม่อ่านราคาปัจจุบัน
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// header ค้าง → ปิดทิ้งไว้ตามเก็บ ตะกร้าคงเดิมให้ลองใหม่
		if markErr := s.Repo.MarkOrphaned(order.ID); markErr != nil {
			log.Printf("order: mark orphaned %d failed: %v", order.ID, markErr)
		}
		return nil, err
	}

	// ทั้งสองจังหวะผ่านแล้วเท่านั้นถึงล้างตะกร้า
	s.Cart.Clear(userID)
	s.Cart.SetOpen(userID, false)

	if s.Sink != nil {
		s.Sink.OrderCreated(&order)
	}
	s.publish(eventbus.OrderEvent{
		Type:        eventbus.EventOrderCreated,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		At:          time.Now(),
	})

	return &SubmitResult{
		ID:          order.ID,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		TotalAmount: order.TotalAmount,
	}, nil
}

// fire-and-forget: order flow ไม่รอ broker
func (s *OrderService) publish(ev eventbus.OrderEvent) {
	if s.Bus == nil || s.Bus.Writer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Bus.PublishOrderEvent(ctx, ev); err != nil {
			log.Printf("order: publish %s for order %d failed: %v", ev.Type, ev.OrderID, err)
		}
	}()
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]entity.Order, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	entity.Order
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}
