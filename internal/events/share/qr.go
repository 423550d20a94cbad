package share

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders share QR codes pointing at an event's public detail page.
type Generator struct {
	PublicBaseURL string
}

func NewGenerator(publicBaseURL string) *Generator {
	return &Generator{PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// EventURL is the public detail address a share QR resolves to.
func (g *Generator) EventURL(eventID string) string {
	return fmt.Sprintf("%s/events/%s", g.PublicBaseURL, eventID)
}

// EventShareQR returns a PNG QR code for the event's detail page.
func (g *Generator) EventShareQR(eventID string) ([]byte, error) {
	png, err := qrcode.Encode(g.EventURL(eventID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate share QR: %w", err)
	}
	return png, nil
}
