package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/repository"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Cart *services.CartStore
	Menu *repository.MenuRepository
}

func NewCartController(cart *services.CartStore, menu *repository.MenuRepository) *CartController {
	return &CartController{Cart: cart, Menu: menu}
}

func (h *CartController) payload(userID uint) gin.H {
	lines := h.Cart.Lines(userID)
	totalItems, totalPrice := h.Cart.Totals(userID)
	return gin.H{
		"lines":      lines,
		"totalItems": totalItems,
		"totalPrice": totalPrice,
		"isOpen":     h.Cart.IsOpen(userID),
	}
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	resp.OK(c, h.payload(utils.CurrentUserID(c)))
}

// POST /cart/items — snapshot เมนู ณ ตอน add
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := h.Menu.Get(req.MenuItemID)
	if err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}
	if !item.IsAvailable {
		resp.BadRequest(c, "menu item is not available")
		return
	}

	h.Cart.AddItem(uid, item)
	resp.OK(c, h.payload(uid))
}

// PATCH /cart/items/:itemId
func (h *CartController) UpdateQuantity(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	h.Cart.UpdateQuantity(uid, uint(itemID), req.Quantity)
	resp.OK(c, h.payload(uid))
}

// DELETE /cart/items/:itemId
func (h *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	h.Cart.RemoveItem(uid, uint(itemID))
	resp.OK(c, h.payload(uid))
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	h.Cart.Clear(uid)
	resp.OK(c, h.payload(uid))
}

// PATCH /cart/drawer — เปิด/ปิด drawer เป็น UI flag เฉย ๆ
func (h *CartController) SetDrawer(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	h.Cart.SetOpen(uid, req.Open)
	resp.OK(c, h.payload(uid))
}
