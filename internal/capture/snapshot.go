package capture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
)

// snapshotQuality matches the ~0.8 JPEG quality of the web client's canvas
// encoding.
const snapshotQuality = 80

// Mirror returns a horizontally flipped copy of src, so the captured frame
// matches the mirrored live preview the user saw.
func Mirror(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	width := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := 0; x < width/2; x++ {
			left := bounds.Min.X + x
			right := bounds.Min.X + width - 1 - x
			l := dst.RGBAAt(left, y)
			dst.SetRGBA(left, y, dst.RGBAAt(right, y))
			dst.SetRGBA(right, y, l)
		}
	}

	return dst
}

// EncodeDataURL encodes a frame as a compressed JPEG data URL, the format the
// face analysis endpoint expects.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: snapshotQuality}); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
