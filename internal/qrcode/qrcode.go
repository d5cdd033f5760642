// Package qrcode renders the public menu URL as a PNG QR code.
package qrcode

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 300

// MenuURL is the public address of the menu with slug.
func MenuURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/menu/" + slug
}

// PNG encodes content as a QR code of size x size pixels with medium error
// recovery and the library's standard quiet zone.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr code content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}
