package chathub

import (
	"fmt"
	"log"

	"anontalk/backend/internal/metrics"
	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"
)

// RouteOutcome classifies a relay attempt.
type RouteOutcome int

const (
	// Delivered: the partner's platform accepted the message.
	Delivered RouteOutcome = iota
	// NoActiveSession: the sender is not in an active chat.
	NoActiveSession
	// PartnerUnreachable: delivery to the partner failed. The message
	// still counts; at-most-once semantics, sender-side state is kept.
	PartnerUnreachable
)

// RouterService forwards content from one chat participant to the
// other through the partner's platform deliverer.
type RouterService struct {
	Storage  storage.Storage
	Delivery *DeliveryRegistry
}

func NewRouterService(s storage.Storage, d *DeliveryRegistry) *RouterService {
	return &RouterService{Storage: s, Delivery: d}
}

// Route resolves the sender's active chat, bumps the message counter
// and hands the content to the partner's platform. The counter
// increment happens before delivery and is never rolled back.
func (r *RouterService) Route(from *models.User, content models.Content) (RouteOutcome, error) {
	chat, err := r.Storage.ActiveChatForUser(from.ID)
	if err != nil {
		return NoActiveSession, fmt.Errorf("router: lookup chat: %w", err)
	}
	if chat == nil {
		return NoActiveSession, nil
	}

	partnerID := chat.PartnerOf(from.ID)
	partner, err := r.Storage.GetUserByID(partnerID)
	if err != nil {
		return NoActiveSession, fmt.Errorf("router: lookup partner %s: %w", partnerID, err)
	}

	if err := r.Storage.IncrementMessageCount(chat.ID); err != nil {
		log.Printf("router: failed to count message in chat %s: %v", chat.ID, err)
	}

	content.FromPartner = true
	if err := r.Delivery.Deliver(partner, content); err != nil {
		metrics.DeliveryFailures.WithLabelValues(string(partner.Platform)).Inc()
		log.Printf("router: delivery to %s/%s failed: %v", partner.Platform, partner.PlatformID, err)
		return PartnerUnreachable, nil
	}

	metrics.MessagesRelayed.WithLabelValues(string(partner.Platform)).Inc()
	return Delivered, nil
}
