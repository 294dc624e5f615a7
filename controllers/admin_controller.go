package controllers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/pkg/search"
	"backend/repository"
	"backend/services"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	Orders  *services.OrderService
	Menu    *repository.MenuRepository
	Users   *repository.UserRepository
	Reviews *repository.ReviewRepository
	Posts   *repository.CommunityRepository
	ES      *elasticsearch.Client // nil ได้
}

func NewAdminController(
	orders *services.OrderService,
	menu *repository.MenuRepository,
	users *repository.UserRepository,
	reviews *repository.ReviewRepository,
	posts *repository.CommunityRepository,
	es *elasticsearch.Client,
) *AdminController {
	return &AdminController{Orders: orders, Menu: menu, Users: users, Reviews: reviews, Posts: posts, ES: es}
}

// GET /admin/dashboard
func (a *AdminController) Dashboard(c *gin.Context) {
	byStatus, err := a.Orders.Repo.CountByStatus()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	menuCount, err := a.Menu.Count()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	userCount, err := a.Users.Count()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"ordersByStatus": byStatus,
		"menuItems":      menuCount,
		"users":          userCount,
	})
}

// ===== Orders =====

// GET /admin/orders?status=&page=&limit=
func (a *AdminController) ListOrders(c *gin.Context) {
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := a.Orders.Repo.ListOrders(status, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": page, "limit": limit})
}

// PATCH /admin/orders/:id/status — ตัวเดียวที่เขียน status
// transition ไม่ valid หรือโดนแย่งเขียน = ไม่สำเร็จ ไม่มี partial
func (a *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updated, err := a.Orders.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrBadTransition):
			resp.BadRequest(c, "invalid status transition")
		case errors.Is(err, services.ErrStatusConflict):
			resp.Conflict(c, "order status changed concurrently")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, updated)
}

// ===== Menu =====

type MenuItemIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
	IsFeatured  *bool  `json:"isFeatured"`
	Stock       int    `json:"stock"`
}

// POST /admin/menu
func (a *AdminController) CreateMenuItem(c *gin.Context) {
	var req MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsAvailable: true,
		Stock:       req.Stock,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}

	if err := a.Menu.Create(&item); err != nil {
		resp.ServerError(c, err)
		return
	}
	a.indexMenuItem(&item)
	resp.Created(c, item)
}

// PATCH /admin/menu/:id
func (a *AdminController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	item, err := a.Menu.Get(uint(id))
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}

	var req MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.ImageURL = req.ImageURL
	item.Category = req.Category
	item.Stock = req.Stock
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}

	if err := a.Menu.Update(item); err != nil {
		resp.ServerError(c, err)
		return
	}
	a.indexMenuItem(item)
	resp.OK(c, item)
}

// DELETE /admin/menu/:id
func (a *AdminController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := a.Menu.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// sync ES best-effort; ค้นหา fallback ลง DB ได้อยู่แล้ว
func (a *AdminController) indexMenuItem(item *entity.MenuItem) {
	if a.ES == nil {
		return
	}
	doc := search.MenuDoc{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		IsAvailable: item.IsAvailable,
	}
	if err := search.IndexMenuItem(context.Background(), a.ES, doc); err != nil {
		log.Printf("admin: index menu item %d failed: %v", item.ID, err)
	}
}

// ===== Users =====

// GET /admin/users
func (a *AdminController) ListUsers(c *gin.Context) {
	profiles, err := a.Users.ListProfiles()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": profiles})
}

// PATCH /admin/users/:id/role
func (a *AdminController) UpdateUserRole(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !entity.ValidRole(req.Role) {
		resp.BadRequest(c, "invalid role")
		return
	}

	if _, err := a.Users.GetByID(uint(id)); err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	if err := a.Users.SetRole(uint(id), req.Role); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"userId": id, "role": req.Role})
}

// ===== Moderation =====

// GET /admin/reviews
func (a *AdminController) ListReviews(c *gin.Context) {
	reviews, err := a.Reviews.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": reviews})
}

// DELETE /admin/reviews/:id
func (a *AdminController) DeleteReview(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := a.Reviews.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// DELETE /admin/community/:id
func (a *AdminController) DeletePost(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := a.Posts.Delete(uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
