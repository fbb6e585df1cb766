package tickets

import (
	"aerobook/internal/shared/apperrors"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoder turns a ticket payload into a scannable image. It is a pure
// function with no side effects so implementations are swappable.
type Encoder interface {
	Encode(payload []byte) ([]byte, error)
}

type qrEncoder struct {
	size int
}

// NewQREncoder returns the default QR code encoder producing PNG images.
func NewQREncoder() Encoder {
	return &qrEncoder{size: 256}
}

func (e *qrEncoder) Encode(payload []byte) ([]byte, error) {
	image, err := qrcode.Encode(string(payload), qrcode.Medium, e.size)
	if err != nil {
		return nil, apperrors.Internal("failed to encode ticket qr code", err)
	}
	return image, nil
}
