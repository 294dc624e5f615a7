package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/repository"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menu    *repository.MenuRepository
	Reviews *repository.ReviewRepository
}

func NewMenuController(menu *repository.MenuRepository, reviews *repository.ReviewRepository) *MenuController {
	return &MenuController{Menu: menu, Reviews: reviews}
}

// GET /menu?category=&all=
func (h *MenuController) List(c *gin.Context) {
	category := c.Query("category")
	// default โชว์เฉพาะที่ available; admin ส่ง all=1 มาดูทั้งหมด
	availableOnly := c.Query("all") == ""

	items, err := h.Menu.List(category, availableOnly)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /menu/featured
func (h *MenuController) Featured(c *gin.Context) {
	items, err := h.Menu.Featured()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	item, err := h.Menu.Get(uint(id))
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	resp.OK(c, item)
}

// GET /menu/:id/reviews
func (h *MenuController) ItemReviews(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	reviews, err := h.Reviews.ListForItem(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": reviews})
}
