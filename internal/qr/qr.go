// Package qr renders scannable code images for short-link destinations.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels for PNG output.
const DefaultSize = 256

// PNG encodes content into a PNG QR image of size x size pixels.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	return qrcode.Encode(content, qrcode.Medium, size)
}

// SVG encodes content into a vector QR image: the module bitmap rendered as
// one unit square per dark module.
func SVG(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	bitmap := code.Bitmap()
	side := len(bitmap)

	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		side, side,
	)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, side, side)

	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="1" height="1" fill="#000000"/>`, x, y)
			}
		}
	}

	b.WriteString(`</svg>`)

	return []byte(b.String()), nil
}
