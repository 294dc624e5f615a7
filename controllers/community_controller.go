package controllers

import (
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	Posts *repository.CommunityRepository
}

func NewCommunityController(posts *repository.CommunityRepository) *CommunityController {
	return &CommunityController{Posts: posts}
}

// GET /community?limit=
func (h *CommunityController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	posts, err := h.Posts.List(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": posts})
}

// POST /community (Protected)
func (h *CommunityController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		Content     string `json:"content" binding:"required"`
		ImageURL    string `json:"imageUrl"`
		ImageBase64 string `json:"imageBase64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	imageURL := req.ImageURL
	if req.ImageBase64 != "" {
		path, err := utils.SaveBase64Image(req.ImageBase64, "./uploads/community")
		if err != nil {
			resp.BadRequest(c, "invalid image payload")
			return
		}
		// เก็บเป็น path ใต้ /uploads ให้ client โหลดตรง ๆ
		imageURL = "/" + path
	}

	post := entity.CommunityPost{
		UserID:   uid,
		Content:  req.Content,
		ImageURL: imageURL,
	}
	if err := h.Posts.Create(&post); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, post)
}

// DELETE /community/:id (Protected) — เจ้าของโพสต์ หรือ staff/admin
func (h *CommunityController) Delete(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)
	id, _ := strconv.Atoi(c.Param("id"))

	post, err := h.Posts.Get(uint(id))
	if err != nil {
		resp.NotFound(c, "post not found")
		return
	}
	if post.UserID != uid && role != entity.RoleStaff && role != entity.RoleAdmin {
		resp.Forbidden(c, "not your post")
		return
	}

	if err := h.Posts.Delete(post.ID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": post.ID})
}
