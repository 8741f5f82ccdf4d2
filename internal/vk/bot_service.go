package vk

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"anontalk/backend/internal/chathub"
	"anontalk/backend/internal/identity"
	"anontalk/backend/internal/models"
)

// Menu labels shown to VK users.
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

const (
	awaitingOwnGender    = "own_gender"
	awaitingFilterGender = "filter_gender"
)

// CallbackEvent is the envelope of a VK Callback API request.
type CallbackEvent struct {
	Type   string          `json:"type"`
	Object json.RawMessage `json:"object"`
}

// messageNew is the payload of a message_new event.
type messageNew struct {
	Message struct {
		FromID      int64        `json:"from_id"`
		Text        string       `json:"text"`
		Attachments []attachment `json:"attachments"`
	} `json:"message"`
}

type attachment struct {
	Type         string     `json:"type"`
	Photo        *mediaItem `json:"photo"`
	Video        *mediaItem `json:"video"`
	AudioMessage *mediaItem `json:"audio_message"`
	Doc          *mediaItem `json:"doc"`
}

type mediaItem struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`
}

// BotService normalizes inbound VK callbacks and routes them to the
// lifecycle controller.
type BotService struct {
	Resolver         *identity.Resolver
	Lifecycle        *chathub.LifecycleService
	Client           *Client
	ConfirmationCode string

	mu      sync.Mutex
	pending map[int64]string
}

func NewBotService(resolver *identity.Resolver, lifecycle *chathub.LifecycleService, client *Client, confirmation string) *BotService {
	return &BotService{
		Resolver:         resolver,
		Lifecycle:        lifecycle,
		Client:           client,
		ConfirmationCode: confirmation,
		pending:          make(map[int64]string),
	}
}

// HandleEvent processes one Callback API event. The returned string is
// the HTTP response body VK expects ("ok", or the confirmation code).
func (s *BotService) HandleEvent(ev *CallbackEvent) string {
	switch ev.Type {
	case "confirmation":
		return s.ConfirmationCode
	case "message_new":
		var payload messageNew
		if err := json.Unmarshal(ev.Object, &payload); err != nil {
			log.Printf("vk: bad message_new payload: %v", err)
			return "ok"
		}
		s.handleMessage(&payload)
	}
	return "ok"
}

func (s *BotService) handleMessage(payload *messageNew) {
	fromID := payload.Message.FromID
	nativeID := strconv.FormatInt(fromID, 10)

	displayName, err := s.Client.UserDisplayName(nativeID)
	if err != nil {
		log.Printf("vk: users.get for %s failed: %v", nativeID, err)
	}

	user, err := s.Resolver.Resolve(models.PlatformVK, nativeID, displayName)
	if err != nil {
		log.Printf("vk: resolve %s failed: %v", nativeID, err)
		return
	}

	for _, cmd := range s.normalize(fromID, payload) {
		if err := s.Lifecycle.Handle(user, cmd); err != nil {
			log.Printf("vk: handle event for %s failed: %v", user.ID, err)
		}
	}
}

// normalize maps a VK message to commands. A message carrying several
// attachments fans out into one relay command per attachment, the way
// VK models multi-media messages.
func (s *BotService) normalize(fromID int64, payload *messageNew) []chathub.Command {
	text := strings.TrimSpace(payload.Message.Text)

	switch text {
	case "/start", "start", labelBack:
		s.clearPending(fromID)
		return []chathub.Command{{Kind: chathub.CmdStart}}
	case labelSettings:
		return []chathub.Command{{Kind: chathub.CmdSettings}}
	case labelSetGender:
		s.setPending(fromID, awaitingOwnGender)
		s.prompt(fromID, "👤 Choose your gender:")
		return nil
	case labelMale, labelFemale:
		gender := models.GenderMale
		if text == labelFemale {
			gender = models.GenderFemale
		}
		if s.takePending(fromID) == awaitingFilterGender {
			return []chathub.Command{{Kind: chathub.CmdSearchByGender, Gender: gender}}
		}
		return []chathub.Command{{Kind: chathub.CmdSetGender, Gender: gender}}
	case labelSearch:
		return []chathub.Command{{Kind: chathub.CmdSearch}}
	case labelSearchGender:
		s.setPending(fromID, awaitingFilterGender)
		s.prompt(fromID, "🎯 Choose your partner's gender:")
		return nil
	case labelStop:
		return []chathub.Command{{Kind: chathub.CmdStop}}
	case labelNext:
		return []chathub.Command{{Kind: chathub.CmdNext}}
	case labelReport:
		return []chathub.Command{{Kind: chathub.CmdComplain}}
	}

	var cmds []chathub.Command
	for _, att := range payload.Message.Attachments {
		if content, ok := attachmentContent(att, text); ok {
			cmds = append(cmds, chathub.Command{Kind: chathub.CmdMessage, Content: content})
		}
	}
	if len(cmds) == 0 && text != "" {
		cmds = append(cmds, chathub.Command{Kind: chathub.CmdMessage, Content: models.TextContent(text)})
	}
	return cmds
}

// attachmentContent builds the opaque attachment reference VK uses for
// re-sending media ("photo{owner}_{id}" etc.).
func attachmentContent(att attachment, caption string) (models.Content, bool) {
	switch att.Type {
	case "photo":
		if att.Photo != nil {
			ref := fmt.Sprintf("photo%d_%d", att.Photo.OwnerID, att.Photo.ID)
			return models.MediaContent(models.ContentPhoto, ref, caption), true
		}
	case "video":
		if att.Video != nil {
			ref := fmt.Sprintf("video%d_%d", att.Video.OwnerID, att.Video.ID)
			return models.MediaContent(models.ContentVideo, ref, caption), true
		}
	case "audio_message":
		if att.AudioMessage != nil {
			ref := fmt.Sprintf("doc%d_%d", att.AudioMessage.OwnerID, att.AudioMessage.ID)
			return models.MediaContent(models.ContentVoice, ref, ""), true
		}
	case "doc":
		if att.Doc != nil {
			ref := fmt.Sprintf("doc%d_%d", att.Doc.OwnerID, att.Doc.ID)
			return models.MediaContent(models.ContentDocument, ref, caption), true
		}
	}
	return models.Content{}, false
}

func (s *BotService) prompt(fromID int64, text string) {
	if err := s.Client.SendMessage(strconv.FormatInt(fromID, 10), text, ""); err != nil {
		log.Printf("vk: prompt to %d failed: %v", fromID, err)
	}
}

func (s *BotService) setPending(fromID int64, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[fromID] = state
}

func (s *BotService) takePending(fromID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.pending[fromID]
	delete(s.pending, fromID)
	return state
}

func (s *BotService) clearPending(fromID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, fromID)
}
