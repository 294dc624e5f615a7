package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/pkg/eventbus"
)

var (
	ErrBadTransition  = errors.New("invalid status transition")
	ErrStatusConflict = errors.New("status changed concurrently, retry")
)

// UpdateStatus คือ writer เดียวของ order.status (ฝั่ง admin/staff)
// guard ด้วย WHERE status เดิม กันสอง transition ชนกัน
func (s *OrderService) UpdateStatus(orderID uint, to string) (*entity.Order, error) {
	if !entity.ValidStatus(to) {
		return nil, ErrBadTransition
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, to) {
		return nil, ErrBadTransition
	}

	affected, err := s.Repo.UpdateStatusGuard(s.DB, o.ID, o.Status, to)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	updated, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if s.Sink != nil {
		s.Sink.OrderStatusChanged(o, updated)
	}
	s.publish(eventbus.OrderEvent{
		Type:        eventbus.EventOrderStatusChanged,
		OrderID:     updated.ID,
		UserID:      updated.UserID,
		Status:      updated.Status,
		OldStatus:   o.Status,
		TotalAmount: updated.TotalAmount,
		At:          time.Now(),
	})

	return updated, nil
}
