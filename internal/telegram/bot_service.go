// Package telegram adapts Telegram webhook updates to the
// platform-agnostic command vocabulary and delivers outbound content
// through the Bot API.
package telegram

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"anontalk/backend/internal/chathub"
	"anontalk/backend/internal/identity"
	"anontalk/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Menu labels shown to Telegram users. The normalizer matches on them
// when translating button presses into commands.
const (
	labelSetGender    = "👤 Set gender"
	labelMale         = "👨 Male"
	labelFemale       = "👩 Female"
	labelSearch       = "🔍 Find partner"
	labelSearchGender = "🎯 Find by gender"
	labelStop         = "🛑 Stop"
	labelNext         = "➡️ Next"
	labelSettings     = "⚙️ Settings"
	labelReport       = "⚠️ Report"
	labelBack         = "◀️ Back"
)

// Pending selection states: the Male/Female buttons are ambiguous, so
// the adapter remembers which question it asked last.
const (
	awaitingOwnGender    = "own_gender"
	awaitingFilterGender = "filter_gender"
)

// BotService normalizes inbound Telegram updates and routes them to
// the lifecycle controller.
type BotService struct {
	Resolver  *identity.Resolver
	Lifecycle *chathub.LifecycleService
	Out       *Deliverer

	mu      sync.Mutex
	pending map[int64]string // chat id -> which gender prompt is open
}

func NewBotService(resolver *identity.Resolver, lifecycle *chathub.LifecycleService, out *Deliverer) *BotService {
	return &BotService{
		Resolver:  resolver,
		Lifecycle: lifecycle,
		Out:       out,
		pending:   make(map[int64]string),
	}
}

// HandleUpdate processes one webhook update. Errors are logged, not
// returned: Telegram retries on non-200 and the work is not
// idempotent at this level.
func (s *BotService) HandleUpdate(update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	var displayName string
	if msg.From != nil {
		displayName = msg.From.UserName
	}

	user, err := s.Resolver.Resolve(models.PlatformTelegram,
		strconv.FormatInt(chatID, 10), displayName)
	if err != nil {
		log.Printf("telegram: resolve %d failed: %v", chatID, err)
		return
	}

	cmd, ok := s.normalize(chatID, msg)
	if !ok {
		return
	}
	if err := s.Lifecycle.Handle(user, cmd); err != nil {
		log.Printf("telegram: handle update for %s failed: %v", user.ID, err)
	}
}

// normalize maps a Telegram message onto the shared command
// vocabulary. Returns ok=false when the message needs no dispatch
// (e.g. a prompt was opened).
func (s *BotService) normalize(chatID int64, msg *tgbotapi.Message) (chathub.Command, bool) {
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "/start", labelBack:
		s.clearPending(chatID)
		return chathub.Command{Kind: chathub.CmdStart}, true

	case "/settings", labelSettings:
		return chathub.Command{Kind: chathub.CmdSettings}, true

	case labelSetGender:
		s.setPending(chatID, awaitingOwnGender)
		s.prompt(chatID, "👤 Choose your gender:")
		return chathub.Command{}, false

	case labelMale, labelFemale:
		gender := models.GenderMale
		if text == labelFemale {
			gender = models.GenderFemale
		}
		if s.takePending(chatID) == awaitingFilterGender {
			return chathub.Command{Kind: chathub.CmdSearchByGender, Gender: gender}, true
		}
		return chathub.Command{Kind: chathub.CmdSetGender, Gender: gender}, true

	case "/search", labelSearch:
		return chathub.Command{Kind: chathub.CmdSearch}, true

	case labelSearchGender:
		s.setPending(chatID, awaitingFilterGender)
		s.prompt(chatID, "🎯 Choose your partner's gender:")
		return chathub.Command{}, false

	case "/stop", labelStop:
		return chathub.Command{Kind: chathub.CmdStop}, true

	case "/next", labelNext:
		return chathub.Command{Kind: chathub.CmdNext}, true

	case "/report", labelReport:
		return chathub.Command{Kind: chathub.CmdComplain}, true
	}

	return chathub.Command{Kind: chathub.CmdMessage, Content: extractContent(msg)}, true
}

// extractContent turns a Telegram message into relay content. For
// media the largest/only variant's FileID is the opaque reference.
func extractContent(msg *tgbotapi.Message) models.Content {
	switch {
	case msg.Photo != nil:
		largest := msg.Photo[len(msg.Photo)-1]
		return models.MediaContent(models.ContentPhoto, largest.FileID, msg.Caption)
	case msg.Video != nil:
		return models.MediaContent(models.ContentVideo, msg.Video.FileID, msg.Caption)
	case msg.Voice != nil:
		return models.MediaContent(models.ContentVoice, msg.Voice.FileID, "")
	case msg.Document != nil:
		return models.MediaContent(models.ContentDocument, msg.Document.FileID, msg.Caption)
	}
	return models.TextContent(msg.Text)
}

func (s *BotService) prompt(chatID int64, text string) {
	if err := s.Out.Deliver(strconv.FormatInt(chatID, 10), models.TextContent(text)); err != nil {
		log.Printf("telegram: prompt to %d failed: %v", chatID, err)
	}
}

func (s *BotService) setPending(chatID int64, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = state
}

func (s *BotService) takePending(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.pending[chatID]
	delete(s.pending, chatID)
	return state
}

func (s *BotService) clearPending(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}
