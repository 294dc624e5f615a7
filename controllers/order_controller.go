package controllers

import (
	"errors"
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	Svc *services.OrderService
	QR  services.QRGenerator
}

func NewOrderController(svc *services.OrderService, qr services.QRGenerator) *OrderController {
	return &OrderController{Svc: svc, QR: qr}
}

// POST /orders — เปลี่ยนตะกร้าเป็น order
func (oc *OrderController) Submit(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	out, err := oc.Svc.SubmitFromCart(c.Request.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			resp.BadRequest(c, "your cart is empty")
		case errors.Is(err, services.ErrSubmitInFlight):
			resp.Conflict(c, "order submission already in progress")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, out)
}

// GET /orders?limit=
func (oc *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, err := oc.Svc.ListForUser(uid, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// GET /orders/:id (เฉพาะเจ้าของออเดอร์)
func (oc *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := oc.Svc.DetailForUser(uid, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// GET /orders/:id/qr — QR รับของ โชว์ได้ตั้งแต่ order ready
func (oc *OrderController) PickupQR(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := oc.Svc.DetailForUser(uid, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	if detail.Status != entity.StatusReady && detail.Status != entity.StatusDelivered {
		resp.BadRequest(c, "order is not ready for pickup")
		return
	}

	png, err := oc.QR.Generate(detail.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	c.Data(200, "image/png", png)
}
