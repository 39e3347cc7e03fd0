// Package proof renders scannable proof artifacts for credential public ids.
package proof

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/skillpass/skillpass-server/internal/model"
)

var _ model.ProofGenerator = (*QRGenerator)(nil)

// QRGenerator renders QR code PNG images. Output is deterministic for the
// same input text.
type QRGenerator struct {
	size int
}

// NewQRGenerator creates a QR generator producing images of the given pixel size.
func NewQRGenerator(size int) *QRGenerator {
	return &QRGenerator{size: size}
}

// Render encodes text into a QR code PNG. Fails if the text exceeds the
// encoding's capacity.
func (g *QRGenerator) Render(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
