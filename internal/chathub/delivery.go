package chathub

import (
	"fmt"

	"anontalk/backend/internal/models"
)

// Deliverer is the outbound half of a platform adapter: it pushes
// content to one native recipient. Implementations translate the
// payload into platform API calls and neutralize any markup the
// destination platform would interpret.
type Deliverer interface {
	Deliver(nativeID string, content models.Content) error
}

// DeliveryRegistry routes outbound sends to the right platform
// adapter. It is populated once at startup and read-only afterwards.
type DeliveryRegistry struct {
	deliverers map[models.Platform]Deliverer
}

func NewDeliveryRegistry() *DeliveryRegistry {
	return &DeliveryRegistry{deliverers: make(map[models.Platform]Deliverer)}
}

// Register binds a deliverer to a platform tag.
func (r *DeliveryRegistry) Register(p models.Platform, d Deliverer) {
	r.deliverers[p] = d
}

// Deliver sends content to a user through their platform's adapter.
func (r *DeliveryRegistry) Deliver(user *models.User, content models.Content) error {
	d, ok := r.deliverers[user.Platform]
	if !ok {
		return fmt.Errorf("chathub: no deliverer registered for platform %q", user.Platform)
	}
	return d.Deliver(user.PlatformID, content)
}

// Notify is Deliver for plain text notices; delivery errors are
// returned so callers can decide whether they matter.
func (r *DeliveryRegistry) Notify(user *models.User, text string) error {
	return r.Deliver(user, models.TextContent(text))
}
