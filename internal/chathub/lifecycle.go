package chathub

import (
	"errors"
	"fmt"
	"log"
	"time"

	"anontalk/backend/internal/metrics"
	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"
)

// User-facing notices. Adapters send them verbatim; keyboards and
// other platform affordances are the adapters' business.
const (
	noticeWelcome = "🎭 Welcome to the anonymous chat!\n\n" +
		"You can talk to strangers from Telegram and VK, fully anonymously.\n\n" +
		"👤 Set gender — choose male/female\n" +
		"🔍 Find partner — start searching\n" +
		"🎯 Find by gender — search with a gender filter\n" +
		"🛑 Stop — cancel search or end the conversation\n" +
		"➡️ Next — end and search again\n" +
		"⚠️ Report — complain about your partner"
	noticeSettings      = "⚙️ Settings:\n\n🔄 Change gender\n◀️ Back"
	noticeSearching     = "🔍 Looking for a partner...\n\nHang tight"
	noticeMatched       = "✅ Partner found! Say hi 💬"
	noticeSearchStopped = "❌ Search stopped"
	noticeChatEnded     = "👋 Conversation ended"
	noticePartnerLeft   = "👋 Your partner left the conversation"
	noticeComplaintSent = "✅ Your complaint was sent to the moderators"
	noticeGenderConfirm = "✅ Gender saved"
	noticePartnerGone   = "⚠️ Your partner could not be reached"
)

// LifecycleService orchestrates every state transition of the
// search/chat state machine and keeps both participants' state
// consistent. One instance serves all platforms.
type LifecycleService struct {
	Storage  storage.Storage
	Matcher  *MatcherService
	Router   *RouterService
	Delivery *DeliveryRegistry

	// RequeueKeepsFilter controls whether "next" re-searches with the
	// user's stored gender preference or with no filter.
	RequeueKeepsFilter bool
}

func NewLifecycleService(s storage.Storage, d *DeliveryRegistry, requeueKeepsFilter bool) *LifecycleService {
	return &LifecycleService{
		Storage:            s,
		Matcher:            NewMatcherService(s),
		Router:             NewRouterService(s, d),
		Delivery:           d,
		RequeueKeepsFilter: requeueKeepsFilter,
	}
}

// StartSearch validates the preconditions, delegates to the matcher
// and notifies the affected parties. Returns a PreconditionError when
// the user may not search yet; no state is mutated in that case.
func (l *LifecycleService) StartSearch(user *models.User, genderFilter string) (*MatchResult, error) {
	blocked, err := l.Storage.IsUserBlocked(user.ID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: block check: %w", err)
	}
	if blocked {
		return nil, errBlocked()
	}
	if !user.HasGender() {
		return nil, errGenderUnset()
	}

	chat, err := l.Storage.ActiveChatForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: chat lookup: %w", err)
	}
	if chat != nil {
		return nil, errAlreadyInChat()
	}

	result, err := l.Matcher.Search(user, genderFilter)
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case Paired:
		l.publish(models.EventMatchCreated, result.Chat.ID, user.ID)
		if err := l.Delivery.Notify(user, noticeMatched); err != nil {
			log.Printf("lifecycle: match notice to %s failed: %v", user.ID, err)
		}
		if err := l.Delivery.Notify(result.Partner, noticeMatched); err != nil {
			log.Printf("lifecycle: match notice to %s failed: %v", result.Partner.ID, err)
		}
	case Queued:
		if err := l.Delivery.Notify(user, noticeSearching); err != nil {
			log.Printf("lifecycle: queued notice to %s failed: %v", user.ID, err)
		}
	case PairedElsewhere:
		// The winning search already told both sides.
	}
	return result, nil
}

// CancelSearch returns the user from searching to idle. Calling it
// while not searching is a reported no-op, not an error.
func (l *LifecycleService) CancelSearch(user *models.User) error {
	stopped, err := l.Storage.StopSearching(user.ID)
	if err != nil {
		return fmt.Errorf("lifecycle: cancel search: %w", err)
	}
	if !stopped {
		return errNotSearching()
	}
	return l.Delivery.Notify(user, noticeSearchStopped)
}

// EndSession tears down the user's active chat, resets both
// participants and notifies each side with its own message. Returns
// the ended chat so "next" can reuse it.
func (l *LifecycleService) EndSession(user *models.User) (*models.Chat, error) {
	chat, err := l.Storage.ActiveChatForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: chat lookup: %w", err)
	}
	if chat == nil {
		return nil, errNotInChat()
	}

	ended, err := l.Storage.EndChat(chat.ID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: end chat %s: %w", chat.ID, err)
	}
	if !ended {
		// The partner ended it in parallel; their teardown did the
		// notifications.
		return chat, nil
	}

	l.publish(models.EventChatEnded, chat.ID, user.ID)

	if err := l.Delivery.Notify(user, noticeChatEnded); err != nil {
		log.Printf("lifecycle: end notice to %s failed: %v", user.ID, err)
	}
	if partner, perr := l.Storage.GetUserByID(chat.PartnerOf(user.ID)); perr == nil {
		if err := l.Delivery.Notify(partner, noticePartnerLeft); err != nil {
			log.Printf("lifecycle: partner notice to %s failed: %v", partner.ID, err)
		}
	} else {
		log.Printf("lifecycle: partner lookup for chat %s failed: %v", chat.ID, perr)
	}
	return chat, nil
}

// NextSession ends the current chat (if any) and immediately
// re-queues the caller. The intermediate idle state is not visible to
// other searchers: only searching users are match candidates, so no
// one can claim the user between the teardown and the re-search.
func (l *LifecycleService) NextSession(user *models.User) error {
	if _, err := l.EndSession(user); err != nil {
		var pre *PreconditionError
		if !errors.As(err, &pre) {
			return err
		}
		// Not in a chat: "next" degrades to a plain search.
	}

	filter := ""
	if l.RequeueKeepsFilter {
		filter = user.GenderPref
	}

	// The user row changed under us during teardown; re-read it so the
	// search sees idle state.
	fresh, err := l.Storage.GetUserByID(user.ID)
	if err != nil {
		return fmt.Errorf("lifecycle: reload user %s: %w", user.ID, err)
	}
	_, err = l.StartSearch(fresh, filter)
	return err
}

// SetGender updates the user's own gender. Allowed in any state.
func (l *LifecycleService) SetGender(user *models.User, gender string) error {
	if gender != models.GenderMale && gender != models.GenderFemale {
		return fmt.Errorf("lifecycle: invalid gender %q", gender)
	}
	if err := l.Storage.UpdateUserGender(user.ID, gender); err != nil {
		return err
	}
	user.Gender = gender
	return l.Delivery.Notify(user, noticeGenderConfirm)
}

// RecordComplaint files a complaint against the partner of the user's
// active chat. No state transition happens; the admin surface picks
// the complaint up later.
func (l *LifecycleService) RecordComplaint(user *models.User, reason string) error {
	chat, err := l.Storage.ActiveChatForUser(user.ID)
	if err != nil {
		return fmt.Errorf("lifecycle: chat lookup: %w", err)
	}
	if chat == nil {
		return errNotInChat()
	}

	if reason == "" {
		reason = "Reported by user"
	}
	complaint := &models.Complaint{
		ChatID:     chat.ID,
		ReporterID: user.ID,
		TargetID:   chat.PartnerOf(user.ID),
		Reason:     reason,
		Status:     models.ComplaintPending,
	}
	if err := l.Storage.SaveComplaint(complaint); err != nil {
		return err
	}

	metrics.ComplaintsFiled.Inc()
	l.publish(models.EventComplaintFiled, chat.ID, user.ID)
	return l.Delivery.Notify(user, noticeComplaintSent)
}

// RelayMessage routes in-session content to the partner and surfaces
// the router outcome to the sender where it matters.
func (l *LifecycleService) RelayMessage(user *models.User, content models.Content) error {
	outcome, err := l.Router.Route(user, content)
	if err != nil {
		return err
	}
	switch outcome {
	case NoActiveSession:
		return errNotInChat()
	case PartnerUnreachable:
		return l.Delivery.Notify(user, noticePartnerGone)
	}
	return nil
}

func (l *LifecycleService) publish(eventType, chatID, userID string) {
	ev := models.Event{
		Type:      eventType,
		ChatID:    chatID,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	if err := l.Storage.PublishEvent(ev); err != nil {
		log.Printf("lifecycle: publish %s event: %v", eventType, err)
	}
}
