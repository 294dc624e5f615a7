package ws

import (
	"log"
	"net/http"
	"sync"

	"backend/entity"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderLister ให้ hub ดึง snapshot ตอน client ต่อเข้ามา
// (OrderService implement ตัวนี้)
type OrderLister interface {
	ListForUser(userID uint, limit int) ([]entity.Order, error)
}

type client struct {
	conn    *websocket.Conn
	userID  uint
	tracker *Tracker
}

type orderEvent struct {
	kind    string // insert | update
	old     *entity.Order
	updated *entity.Order
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type outbound struct {
	Type         string        `json:"type"` // snapshot | order_insert | order_update
	Orders       []OrderView   `json:"orders,omitempty"`
	Order        *OrderView    `json:"order,omitempty"`
	Notice       string        `json:"notice,omitempty"`
	Notification *notification `json:"notification,omitempty"`
}

// OrderHub กระจาย order event ให้ connection ของเจ้าของ order เท่านั้น
// หนึ่ง user เปิดได้หลาย tab แต่ละ tab มี tracker ของตัวเอง
type OrderHub struct {
	clients    map[uint]map[*client]bool // userID -> set of clients
	events     chan orderEvent
	register   chan *client
	unregister chan *client
	mu         sync.Mutex
	lister     OrderLister
}

func NewOrderHub(lister OrderLister) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*client]bool),
		events:     make(chan orderEvent, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		lister:     lister,
	}
}

// OrderCreated / OrderStatusChanged ให้ OrderService เรียกหลัง commit
// (services.OrderEventSink)
func (h *OrderHub) OrderCreated(o *entity.Order) {
	h.events <- orderEvent{kind: "insert", updated: o}
}

func (h *OrderHub) OrderStatusChanged(old, updated *entity.Order) {
	h.events <- orderEvent{kind: "update", old: old, updated: updated}
}

// คอยฟัง register/unregister/event ตลอดเวลา
func (h *OrderHub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*client]bool)
			}
			// snapshot ต้องออกก่อน event แรกเสมอ: เขียนตรงนี้ก่อน client เข้าตาราง
			// (event ทั้งหมดวิ่งผ่าน loop เดียวกัน เลยแซงไม่ได้)
			if err := c.conn.WriteJSON(&outbound{Type: "snapshot", Orders: c.tracker.Snapshot()}); err != nil {
				log.Printf("ws write error: %v", err)
				c.conn.Close()
				h.mu.Unlock()
				continue
			}
			h.clients[c.userID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.userID][c]; ok {
				delete(h.clients[c.userID], c)
				c.conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.events:
			h.mu.Lock()
			for c := range h.clients[ev.updated.UserID] {
				msg, ok := h.apply(c, ev)
				if !ok {
					continue
				}
				if err := c.conn.WriteJSON(msg); err != nil {
					log.Printf("ws write error: %v", err)
					c.conn.Close()
					delete(h.clients[ev.updated.UserID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *OrderHub) apply(c *client, ev orderEvent) (*outbound, bool) {
	switch ev.kind {
	case "insert":
		if !c.tracker.ApplyInsert(ev.updated) {
			return nil, false
		}
		v := viewOf(ev.updated)
		return &outbound{Type: "order_insert", Order: &v}, true

	case "update":
		notice, applied := c.tracker.ApplyUpdate(ev.old, ev.updated)
		if !applied {
			return nil, false
		}
		v := viewOf(ev.updated)
		msg := &outbound{Type: "order_update", Order: &v, Notice: notice}
		if notice != "" {
			// ฝั่ง client โชว์ system notification ได้ถ้าเคยขอ permission แล้ว
			msg.Notification = &notification{Title: "Tiffin Table", Body: notice}
		}
		return msg, true
	}
	return nil, false
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders (ผ่าน WSAuthMiddleware แล้ว)
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// snapshot ล้มไม่เงียบ: แจ้ง client แล้วไม่เปิด channel
	initial, err := h.lister.ListForUser(userID, trackerCap)
	if err != nil {
		log.Printf("ws: initial order fetch failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	cl := &client{conn: conn, userID: userID, tracker: NewTracker(initial)}
	h.register <- cl

	go h.listen(cl)
}

// listen แค่รอ connection ปิด (channel นี้ server push อย่างเดียว)
func (h *OrderHub) listen(cl *client) {
	defer func() { h.unregister <- cl }()

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}
