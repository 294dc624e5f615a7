package services

import (
	"sync"
)

// FavoriteRepo แยกเป็น interface ให้ test ฉีด failure ได้
type FavoriteRepo interface {
	ListItemIDs(userID uint) ([]uint, error)
	Insert(userID, menuItemID uint) error
	Delete(userID, menuItemID uint) error
}

// FavoriteService ถือ set ของ item ที่ user กด like ไว้ใน memory
// โหลดครั้งเดียวตอนแรกใช้ แล้ว mutate แบบ optimistic:
// flip ใน cache ก่อน เขียน DB ตาม ถ้าเขียนล้มต้อง rollback กลับค่าเดิม
// (cache ห้าม diverge จาก DB หลัง write ที่ล้มเหลว)
type FavoriteService struct {
	mu   sync.Mutex
	repo FavoriteRepo
	sets map[uint]map[uint]bool // userID -> set of menu item ids
}

func NewFavoriteService(repo FavoriteRepo) *FavoriteService {
	return &FavoriteService{repo: repo, sets: make(map[uint]map[uint]bool)}
}

// ต้องถือ mu อยู่แล้ว
func (s *FavoriteService) ensureLoaded(userID uint) (map[uint]bool, error) {
	if set, ok := s.sets[userID]; ok {
		return set, nil
	}
	ids, err := s.repo.ListItemIDs(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	s.sets[userID] = set
	return set, nil
}

func (s *FavoriteService) IsFavorite(userID, menuItemID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.ensureLoaded(userID)
	if err != nil {
		return false, err
	}
	return set[menuItemID], nil
}

func (s *FavoriteService) IDs(userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.ensureLoaded(userID)
	if err != nil {
		return nil, err
	}
	out := make([]uint, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out, nil
}

// Toggle คืนสถานะใหม่หลัง flip
// ถือ lock ตลอดทั้ง flip+write ให้กดรัว ๆ แล้ว toggle เรียงกันเสมอ
func (s *FavoriteService) Toggle(userID, menuItemID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.ensureLoaded(userID)
	if err != nil {
		return false, err
	}

	was := set[menuItemID]

	// optimistic flip
	if was {
		delete(set, menuItemID)
		err = s.repo.Delete(userID, menuItemID)
	} else {
		set[menuItemID] = true
		err = s.repo.Insert(userID, menuItemID)
	}

	if err != nil {
		// rollback จากค่าที่ capture ไว้ ไม่ derive ใหม่
		if was {
			set[menuItemID] = true
		} else {
			delete(set, menuItemID)
		}
		return was, err
	}
	return !was, nil
}

// Reset เรียกตอน identity หาย (logout) ให้ login รอบใหม่ fetch สด
func (s *FavoriteService) Reset(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, userID)
}
