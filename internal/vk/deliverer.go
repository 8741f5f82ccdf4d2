package vk

import (
	"fmt"

	"anontalk/backend/internal/models"
)

// Deliverer sends content to a VK user. VK renders plain text, so no
// markup neutralization is needed on this side; media travels as an
// attachment reference string.
type Deliverer struct {
	Client *Client
}

func NewDeliverer(client *Client) *Deliverer {
	return &Deliverer{Client: client}
}

// Deliver implements chathub.Deliverer for VK recipients.
func (d *Deliverer) Deliver(nativeID string, content models.Content) error {
	switch content.Kind {
	case models.ContentText:
		text := content.Text
		if content.FromPartner {
			text = "💬 Partner:\n" + text
		}
		return d.Client.SendMessage(nativeID, text, "")

	case models.ContentPhoto, models.ContentVideo, models.ContentVoice, models.ContentDocument:
		return d.Client.SendMessage(nativeID, content.Caption, content.FileRef)
	}
	return fmt.Errorf("vk: unsupported content kind %q", content.Kind)
}
