package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// QRService renders check-in codes that point at a restaurant page.
type QRService struct {
	baseURL string
}

// NewQRService takes the frontend origin, e.g. "https://starclub.app".
func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *QRService) CheckInURL(restaurantID string) string {
	return fmt.Sprintf("%s/restaurant/%s", s.baseURL, restaurantID)
}

// GenerateQRCode returns a PNG encoding the restaurant's check-in URL.
func (s *QRService) GenerateQRCode(restaurantID string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(s.CheckInURL(restaurantID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
