package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID uint) ([]byte, error)
}

// PickupQR ใช้โชว์ที่หน้าร้านตอน order ready
type PickupQR struct {
	BaseURL string
}

func (g PickupQR) Generate(orderID uint) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
