package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	// เดินหน้าตาม happy path
	require.True(t, CanTransition(StatusPending, StatusPreparing))
	require.True(t, CanTransition(StatusPreparing, StatusReady))
	require.True(t, CanTransition(StatusReady, StatusDelivered))

	// ข้ามขั้นได้
	require.True(t, CanTransition(StatusPending, StatusDelivered))

	// ถอยหลังไม่ได้
	require.False(t, CanTransition(StatusPreparing, StatusPending))
	require.False(t, CanTransition(StatusDelivered, StatusReady))

	// cancel ได้จากทุกสถานะที่ยังไม่จบ
	require.True(t, CanTransition(StatusPending, StatusCancelled))
	require.True(t, CanTransition(StatusReady, StatusCancelled))

	// terminal แก้ไม่ได้แล้ว
	require.False(t, CanTransition(StatusDelivered, StatusCancelled))
	require.False(t, CanTransition(StatusCancelled, StatusPending))
	require.False(t, CanTransition(StatusCancelled, StatusCancelled))

	// status แปลกปลอม
	require.False(t, CanTransition("shipped", StatusReady))
	require.False(t, CanTransition(StatusPending, "shipped"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		require.True(t, ValidStatus(s))
	}
	require.False(t, ValidStatus("shipped"))
	require.False(t, ValidStatus(""))
}
