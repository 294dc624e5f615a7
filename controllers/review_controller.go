package controllers

import (
	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *repository.ReviewRepository
	Menu    *repository.MenuRepository
}

func NewReviewController(reviews *repository.ReviewRepository, menu *repository.MenuRepository) *ReviewController {
	return &ReviewController{Reviews: reviews, Menu: menu}
}

type CreateReviewReq struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// POST /reviews (Protected)
func (rc *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if _, err := rc.Menu.Get(req.MenuItemID); err != nil {
		resp.BadRequest(c, "menu item not found")
		return
	}

	rev := entity.Review{
		UserID:     uid,
		MenuItemID: req.MenuItemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := rc.Reviews.Create(&rev); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, rev)
}
