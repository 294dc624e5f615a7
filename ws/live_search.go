package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

const searchDebounce = 300 * time.Millisecond

// LiveSearch คือ type-ahead search ผ่าน websocket
// ทุก keystroke เข้ามาเป็น message → debounce 300ms → ยิง query เดียว
type LiveSearch struct {
	Service *services.SearchService
}

func NewLiveSearch(svc *services.SearchService) *LiveSearch {
	return &LiveSearch{Service: svc}
}

type searchQuery struct {
	Query  string `json:"query"`
	Filter string `json:"filter"`
}

type searchReply struct {
	Type    string                  `json:"type"` // search_results | search_error
	Query   string                  `json:"query"`
	Results []services.SearchResult `json:"results,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// WS route: /ws/search (ผ่าน WSAuthMiddleware แล้ว)
func (s *LiveSearch) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	debouncer := services.NewDebouncer(searchDebounce)
	defer debouncer.Stop() // connection ปิดแล้วห้ามมีงานค้างมาเขียนซ้ำ

	// gorilla อนุญาต writer เดียว; งาน debounce เขียนจาก goroutine ของ timer
	var writeMu sync.Mutex

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var q searchQuery
		if err := json.Unmarshal(data, &q); err != nil {
			log.Printf("ws: invalid search payload: %v", err)
			continue
		}

		debouncer.Schedule(func(gen uint64) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			results, err := s.Service.Search(ctx, userID, q.Query, q.Filter)

			// last query wins: ผลของ query ที่โดน keystroke ใหม่แซง ห้าม commit
			if !debouncer.Latest(gen) {
				return
			}

			reply := searchReply{Type: "search_results", Query: q.Query, Results: results}
			if err != nil {
				reply = searchReply{Type: "search_error", Query: q.Query, Error: "search failed"}
			}

			writeMu.Lock()
			defer writeMu.Unlock()
			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("ws write error: %v", err)
			}
		})
	}
}
