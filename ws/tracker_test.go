package ws

import (
	"fmt"
	"testing"
	"time"

	"backend/entity"

	"github.com/stretchr/testify/require"
)

func order(id uint, status string, updatedAt time.Time) *entity.Order {
	o := &entity.Order{Status: status, TotalAmount: 230}
	o.ID = id
	o.UpdatedAt = updatedAt
	return o
}

func TestTracker_InsertPrependsNewest(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()

	require.True(t, tr.ApplyInsert(order(1, entity.StatusPending, now)))
	require.True(t, tr.ApplyInsert(order(2, entity.StatusPending, now)))

	snap := tr.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, uint(2), snap[0].ID)
	require.Equal(t, uint(1), snap[1].ID)
}

func TestTracker_DuplicateInsertIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	o := order(1, entity.StatusPending, time.Now())

	require.True(t, tr.ApplyInsert(o))
	require.False(t, tr.ApplyInsert(o))
	require.Len(t, tr.Snapshot(), 1)
}

func TestTracker_CapKeepsTenNewest(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()

	for i := uint(1); i <= 12; i++ {
		tr.ApplyInsert(order(i, entity.StatusPending, now))
	}

	snap := tr.Snapshot()
	require.Len(t, snap, 10)
	require.Equal(t, uint(12), snap[0].ID)
	require.Equal(t, uint(3), snap[9].ID)
}

func TestTracker_UpdateMergesInPlace(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()

	tr.ApplyInsert(order(1, entity.StatusPending, now))
	tr.ApplyInsert(order(2, entity.StatusPending, now))

	old := order(1, entity.StatusPending, now)
	updated := order(1, entity.StatusPreparing, now.Add(time.Second))

	notice, applied := tr.ApplyUpdate(old, updated)
	require.True(t, applied)
	require.Equal(t, "Your order is being prepared! 👨‍🍳", notice)

	// ตำแหน่งเดิม ไม่ re-sort
	snap := tr.Snapshot()
	require.Equal(t, uint(2), snap[0].ID)
	require.Equal(t, uint(1), snap[1].ID)
	require.Equal(t, entity.StatusPreparing, snap[1].Status)
}

func TestTracker_NoticeOnlyOnStatusChange(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()
	tr.ApplyInsert(order(1, entity.StatusPreparing, now))

	// status เดิม แค่ field อื่นขยับ = ไม่เด้ง notification
	old := order(1, entity.StatusPreparing, now)
	updated := order(1, entity.StatusPreparing, now.Add(time.Second))
	notice, applied := tr.ApplyUpdate(old, updated)
	require.True(t, applied)
	require.Empty(t, notice)

	// เปลี่ยนจริงเด้งครั้งเดียว
	ready := order(1, entity.StatusReady, now.Add(2*time.Second))
	notice, applied = tr.ApplyUpdate(updated, ready)
	require.True(t, applied)
	require.Equal(t, "Your order is ready for pickup! 🎉", notice)
}

func TestTracker_StaleUpdateDropped(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()
	tr.ApplyInsert(order(1, entity.StatusReady, now))

	// event เก่ากว่า state ที่ถืออยู่ (มาช้าข้าม network)
	stale := order(1, entity.StatusPreparing, now.Add(-time.Minute))
	notice, applied := tr.ApplyUpdate(order(1, entity.StatusReady, now), stale)
	require.False(t, applied)
	require.Empty(t, notice)
	require.Equal(t, entity.StatusReady, tr.Snapshot()[0].Status)
}

func TestTracker_UpdateUnknownOrderIgnored(t *testing.T) {
	tr := NewTracker(nil)

	notice, applied := tr.ApplyUpdate(nil, order(99, entity.StatusReady, time.Now()))
	require.False(t, applied)
	require.Empty(t, notice)
}

func TestTracker_InitialSnapshotCapped(t *testing.T) {
	var initial []entity.Order
	for i := uint(1); i <= 15; i++ {
		o := entity.Order{Status: entity.StatusPending}
		o.ID = i
		o.CustomerName = fmt.Sprintf("Customer %d", i)
		initial = append(initial, o)
	}

	tr := NewTracker(initial)
	require.Len(t, tr.Snapshot(), 10)
}

func TestStatusMessage_UnknownStatusSilent(t *testing.T) {
	require.Empty(t, StatusMessage(entity.StatusPending))
	require.NotEmpty(t, StatusMessage(entity.StatusDelivered))
	require.NotEmpty(t, StatusMessage(entity.StatusCancelled))
}
