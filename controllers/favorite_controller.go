package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	Svc *services.FavoriteService
}

func NewFavoriteController(svc *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Svc: svc}
}

// GET /favorites
func (h *FavoriteController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	ids, err := h.Svc.IDs(uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"menuItemIds": ids})
}

// POST /favorites/:itemId/toggle
func (h *FavoriteController) Toggle(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || itemID <= 0 {
		resp.BadRequest(c, "invalid menu item id")
		return
	}

	isFavorite, err := h.Svc.Toggle(uid, uint(itemID))
	if err != nil {
		// optimistic flip ถูก rollback แล้ว state ฝั่งเราตรงกับ DB
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"menuItemId": itemID, "isFavorite": isFavorite})
}
