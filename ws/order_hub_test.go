package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	orders []entity.Order
}

func (s stubLister) ListForUser(userID uint, limit int) ([]entity.Order, error) {
	return s.orders, nil
}

func dialHub(t *testing.T, hub *OrderHub) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/orders", func(c *gin.Context) { c.Set("userId", uint(7)) }, hub.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestOrderHub_SnapshotIsFirstFrame(t *testing.T) {
	now := time.Now()
	existing := entity.Order{Status: entity.StatusPending, TotalAmount: 230, UserID: 7}
	existing.ID = 1
	existing.UpdatedAt = now

	hub := NewOrderHub(stubLister{orders: []entity.Order{existing}})
	go hub.Run()

	conn := dialHub(t, hub)

	var first outbound
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "snapshot", first.Type)
	require.Len(t, first.Orders, 1)
	require.Equal(t, uint(1), first.Orders[0].ID)

	// event หลัง connect ต้องตามหลัง snapshot เสมอ
	created := entity.Order{Status: entity.StatusPending, TotalAmount: 140, UserID: 7}
	created.ID = 2
	created.UpdatedAt = now
	hub.OrderCreated(&created)

	var second outbound
	require.NoError(t, conn.ReadJSON(&second))
	require.Equal(t, "order_insert", second.Type)
	require.Equal(t, uint(2), second.Order.ID)
}

func TestOrderHub_StatusChangeCarriesNotification(t *testing.T) {
	now := time.Now()
	existing := entity.Order{Status: entity.StatusPreparing, TotalAmount: 230, UserID: 7}
	existing.ID = 1
	existing.UpdatedAt = now

	hub := NewOrderHub(stubLister{orders: []entity.Order{existing}})
	go hub.Run()

	conn := dialHub(t, hub)

	var snap outbound
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, "snapshot", snap.Type)

	old := existing
	updated := existing
	updated.Status = entity.StatusReady
	updated.UpdatedAt = now.Add(time.Second)
	hub.OrderStatusChanged(&old, &updated)

	var msg outbound
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "order_update", msg.Type)
	require.Equal(t, entity.StatusReady, msg.Order.Status)
	require.NotNil(t, msg.Notification)
	require.Equal(t, "Your order is ready for pickup! 🎉", msg.Notification.Body)
}
