package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"backend/entity"
	"backend/pkg/cache"
)

// CartLine เป็น snapshot ของเมนู ณ ตอนกด add
// ราคาเมนูเปลี่ยนทีหลังไม่มีผลกับ line ที่อยู่ในตะกร้าแล้ว
type CartLine struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Quantity   int    `json:"quantity"`
}

type cartState struct {
	Lines []CartLine `json:"lines"`
	Open  bool       `json:"open"`
}

// CartStore ถือตะกร้าต่อ user ใน memory
// totals ไม่ถูกเก็บแยก ต้องคำนวณจาก lines ทุกครั้ง กัน stale total
// ถ้ามี Redis จะ snapshot ลงไปด้วย ให้ตะกร้ารอด restart/reload
type CartStore struct {
	mu    sync.Mutex
	carts map[uint]*cartState
	cache *cache.RedisCache // nil = memory only
}

func NewCartStore(c *cache.RedisCache) *CartStore {
	return &CartStore{carts: make(map[uint]*cartState), cache: c}
}

// ต้องถือ mu อยู่แล้ว
func (s *CartStore) state(userID uint) *cartState {
	if st, ok := s.carts[userID]; ok {
		return st
	}
	st := &cartState{}
	if s.cache != nil {
		var saved cartState
		err := s.cache.GetJSON(context.Background(), s.cache.CartKey(userID), &saved)
		if err == nil {
			st = &saved
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("cart: load snapshot failed for user %d: %v", userID, err)
		}
	}
	s.carts[userID] = st
	return st
}

// best-effort: ตะกร้าใน memory เป็น source of truth
func (s *CartStore) persist(userID uint, st *cartState) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(context.Background(), s.cache.CartKey(userID), st); err != nil {
		log.Printf("cart: persist snapshot failed for user %d: %v", userID, err)
	}
}

// AddItem รวม line เดิมถ้าเมนูซ้ำ (ตำแหน่งเดิม) ไม่งั้น append ท้ายลิสต์
func (s *CartStore) AddItem(userID uint, item *entity.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	for i := range st.Lines {
		if st.Lines[i].MenuItemID == item.ID {
			st.Lines[i].Quantity++
			s.persist(userID, st)
			return
		}
	}
	st.Lines = append(st.Lines, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		ImageURL:   item.ImageURL,
		Quantity:   1,
	})
	s.persist(userID, st)
}

// UpdateQuantity: qty <= 0 คือลบ line, id ไม่อยู่ = no-op
func (s *CartStore) UpdateQuantity(userID, menuItemID uint, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	for i := range st.Lines {
		if st.Lines[i].MenuItemID != menuItemID {
			continue
		}
		if qty <= 0 {
			st.Lines = append(st.Lines[:i], st.Lines[i+1:]...)
		} else {
			st.Lines[i].Quantity = qty
		}
		s.persist(userID, st)
		return
	}
}

func (s *CartStore) RemoveItem(userID, menuItemID uint) {
	s.UpdateQuantity(userID, menuItemID, 0)
}

func (s *CartStore) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	st.Lines = nil
	s.persist(userID, st)
}

// Lines คืน copy กัน caller แก้ state ข้าม lock
func (s *CartStore) Lines(userID uint) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	out := make([]CartLine, len(st.Lines))
	copy(out, st.Lines)
	return out
}

func (s *CartStore) Totals(userID uint) (totalItems int, totalPrice int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	for _, line := range st.Lines {
		totalItems += line.Quantity
		totalPrice += line.Price * int64(line.Quantity)
	}
	return totalItems, totalPrice
}

// drawer open/close เป็นแค่ UI flag
func (s *CartStore) SetOpen(userID uint, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	st.Open = open
	s.persist(userID, st)
}

func (s *CartStore) IsOpen(userID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(userID).Open
}
