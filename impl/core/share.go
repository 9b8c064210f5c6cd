package core

import (
	"SchoolPick/entity"
	"fmt"
	"github.com/skip2/go-qrcode"
)

const (
	qrMinSize = 64
	qrMaxSize = 1024
)

func (c *Core) ClientConfig() entity.ClientConfig {
	return entity.ClientConfig{
		MapApiKey: c.mapApiKey,
		PublicURL: c.publicURL,
	}
}

// ShareQR encodes the public survey address as a PNG of size x size pixels.
func (c *Core) ShareQR(size int) ([]byte, error) {
	if c.publicURL == "" {
		return nil, fmt.Errorf("%w: public url is empty", ErrNotReady)
	}
	size = min(max(size, qrMinSize), qrMaxSize)
	png, err := qrcode.Encode(c.publicURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
