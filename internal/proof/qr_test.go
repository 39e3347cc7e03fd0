package proof

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"
)

func decodeQR(t *testing.T, data []byte) string {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	return result.GetText()
}

func TestQRGenerator_Roundtrip(t *testing.T) {
	g := NewQRGenerator(256)
	publicID := fmt.Sprintf("SSP-%s", uuid.New())

	data, err := g.Render(publicID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	require.Equal(t, publicID, decodeQR(t, data))
}

func TestQRGenerator_Deterministic(t *testing.T) {
	g := NewQRGenerator(256)

	a, err := g.Render("SSP-same-input")
	require.NoError(t, err)
	b, err := g.Render("SSP-same-input")
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestQRGenerator_CapacityExceeded(t *testing.T) {
	g := NewQRGenerator(256)

	// Numeric QR capacity tops out near 7089 digits at the lowest level.
	_, err := g.Render(strings.Repeat("1", 8000))
	require.Error(t, err)
}
