package telegram

import (
	"fmt"
	"html"
	"strconv"

	"anontalk/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Deliverer sends content to a Telegram chat. Relayed partner text is
// escaped before interpolation into the HTML parse mode, so markup
// coming from the other platform can never be interpreted here.
type Deliverer struct {
	BotAPI *tgbotapi.BotAPI
}

func NewDeliverer(bot *tgbotapi.BotAPI) *Deliverer {
	return &Deliverer{BotAPI: bot}
}

// Deliver implements chathub.Deliverer for Telegram recipients.
func (d *Deliverer) Deliver(nativeID string, content models.Content) error {
	chatID, err := strconv.ParseInt(nativeID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: bad chat id %q: %w", nativeID, err)
	}

	var msg tgbotapi.Chattable
	switch content.Kind {
	case models.ContentText:
		m := tgbotapi.NewMessage(chatID, content.Text)
		if content.FromPartner {
			m.Text = renderPartnerText(content.Text)
			m.ParseMode = tgbotapi.ModeHTML
		}
		msg = m

	case models.ContentPhoto:
		p := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(content.FileRef))
		p.Caption = content.Caption
		msg = p

	case models.ContentVideo:
		v := tgbotapi.NewVideo(chatID, tgbotapi.FileID(content.FileRef))
		v.Caption = content.Caption
		msg = v

	case models.ContentVoice:
		msg = tgbotapi.NewVoice(chatID, tgbotapi.FileID(content.FileRef))

	case models.ContentDocument:
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(content.FileRef))
		doc.Caption = content.Caption
		msg = doc

	default:
		return fmt.Errorf("telegram: unsupported content kind %q", content.Kind)
	}

	if _, err := d.BotAPI.Send(msg); err != nil {
		return fmt.Errorf("telegram: send to %d: %w", chatID, err)
	}
	return nil
}

// renderPartnerText frames relayed text and escapes it so nothing the
// partner typed is interpreted as HTML markup.
func renderPartnerText(text string) string {
	return "💬 <b>Partner:</b>\n" + html.EscapeString(text)
}
