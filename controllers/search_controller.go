package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// HTTP search ยิงตรงไม่ debounce (debounce อยู่ที่ /ws/search)
type SearchController struct {
	Svc *services.SearchService
}

func NewSearchController(svc *services.SearchService) *SearchController {
	return &SearchController{Svc: svc}
}

// GET /search?q=&filter=all|menu|orders|favorites
func (h *SearchController) Search(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	results, err := h.Svc.Search(c.Request.Context(), uid, c.Query("q"), c.Query("filter"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"results": results})
}
