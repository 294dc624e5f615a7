package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"backend/pkg/search"
	"backend/repository"

	"github.com/elastic/go-elasticsearch/v9"
)

const (
	minQueryLen       = 2
	menuResultCap     = 5
	orderResultCap    = 3
	favoriteResultCap = 3
)

type SearchResult struct {
	ID       uint   `json:"id"`
	Type     string `json:"type"` // menu | order | favorite
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Status   string `json:"status,omitempty"`
}

type SearchService struct {
	Menu   *repository.MenuRepository
	Orders *repository.OrderRepository
	Favs   *FavoriteService
	ES     *elasticsearch.Client // nil = DB LIKE fallback
}

func NewSearchService(
	menu *repository.MenuRepository,
	orders *repository.OrderRepository,
	favs *FavoriteService,
	es *elasticsearch.Client,
) *SearchService {
	return &SearchService{Menu: menu, Orders: orders, Favs: favs, ES: es}
}

// Search รวมผลสามหมวดตาม filter: เมนู ≤5, order ตัวเอง ≤3, favorites ≤3
// userID = 0 คือไม่ได้ login → ข้าม orders กับ favorites
func (s *SearchService) Search(ctx context.Context, userID uint, query, filter string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	// นับเป็น rune ไม่ใช่ byte: ตัวอักษรไทยตัวเดียวยังไม่ถึงขั้นต่ำ
	if utf8.RuneCountInString(query) < minQueryLen {
		return nil, nil
	}
	if filter == "" {
		filter = "all"
	}

	var results []SearchResult

	if filter == "all" || filter == "menu" {
		menuResults, err := s.searchMenu(ctx, query)
		if err != nil {
			return nil, err
		}
		results = append(results, menuResults...)
	}

	if userID != 0 && (filter == "all" || filter == "orders") {
		orders, err := s.Orders.SearchOrdersForUser(userID, query, orderResultCap)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			results = append(results, SearchResult{
				ID:       o.ID,
				Type:     "order",
				Title:    fmt.Sprintf("Order #%d", o.ID),
				Subtitle: o.CreatedAt.Format("2 Jan 2006"),
				Price:    o.TotalAmount,
				Status:   o.Status,
			})
		}
	}

	if userID != 0 && (filter == "all" || filter == "favorites") {
		ids, err := s.Favs.IDs(userID)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			items, err := s.Menu.SearchWithin(ids, query, favoriteResultCap)
			if err != nil {
				return nil, err
			}
			for _, m := range items {
				results = append(results, SearchResult{
					ID:       m.ID,
					Type:     "favorite",
					Title:    m.Name,
					Subtitle: m.Category,
					Image:    m.ImageURL,
					Price:    m.Price,
				})
			}
		}
	}

	return results, nil
}

func (s *SearchService) searchMenu(ctx context.Context, query string) ([]SearchResult, error) {
	if s.ES != nil {
		docs, err := search.SearchMenu(ctx, s.ES, query, menuResultCap)
		if err == nil {
			out := make([]SearchResult, 0, len(docs))
			for _, d := range docs {
				out = append(out, SearchResult{
					ID:       d.ID,
					Type:     "menu",
					Title:    d.Name,
					Subtitle: d.Category,
					Image:    d.ImageURL,
					Price:    d.Price,
				})
			}
			return out, nil
		}
		// ES ล่มไม่ควรทำให้ search ใช้ไม่ได้
		log.Printf("search: elasticsearch failed, falling back to db: %v", err)
	}

	items, err := s.Menu.Search(query, menuResultCap)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(items))
	for _, m := range items {
		out = append(out, SearchResult{
			ID:       m.ID,
			Type:     "menu",
			Title:    m.Name,
			Subtitle: m.Category,
			Image:    m.ImageURL,
			Price:    m.Price,
		})
	}
	return out, nil
}
