package services

import (
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// QRService turns a share URL into PNG bytes. Purely cosmetic: callers log
// and suppress failures, the share link itself is never affected.
type QRService struct {
	size int
}

func NewQRService() *QRService {
	return &QRService{size: qrImageSize}
}

func (s *QRService) Encode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, s.size)
}
