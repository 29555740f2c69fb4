// Package qrcode renders QR codes as PNG images.
package qrcode

import (
	"errors"
	"fmt"

	"github.com/assetops/backend/internal/application/link"
	qr "github.com/skip2/go-qrcode"
)

// Encoder renders PNG QR codes at a fixed error-correction level
type Encoder struct {
	level qr.RecoveryLevel
}

// NewEncoder creates an encoder using medium (15%) error correction
func NewEncoder() *Encoder {
	return &Encoder{level: qr.Medium}
}

// Encode renders content as a size x size PNG
func (e *Encoder) Encode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	png, err := qr.Encode(content, e.level, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

var _ link.QREncoder = (*Encoder)(nil)
