package vk

import (
	"encoding/json"
	"testing"

	"anontalk/backend/internal/chathub"
	"anontalk/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messagePayload(text string, atts ...attachment) *messageNew {
	p := &messageNew{}
	p.Message.FromID = 555
	p.Message.Text = text
	p.Message.Attachments = atts
	return p
}

// TestHandleEventConfirmation verifies the Callback API handshake echo.
func TestHandleEventConfirmation(t *testing.T) {
	s := &BotService{ConfirmationCode: "abc123", pending: make(map[int64]string)}

	body := s.HandleEvent(&CallbackEvent{Type: "confirmation"})

	assert.Equal(t, "abc123", body)
}

// TestHandleEventUnknownTypeAcks verifies unhandled event types still
// get the "ok" VK requires.
func TestHandleEventUnknownTypeAcks(t *testing.T) {
	s := &BotService{pending: make(map[int64]string)}

	body := s.HandleEvent(&CallbackEvent{Type: "group_join", Object: json.RawMessage(`{}`)})

	assert.Equal(t, "ok", body)
}

// TestNormalizeMenuLabels verifies label-to-command mapping.
func TestNormalizeMenuLabels(t *testing.T) {
	tests := []struct {
		text string
		kind chathub.CommandKind
	}{
		{"/start", chathub.CmdStart},
		{"start", chathub.CmdStart},
		{labelBack, chathub.CmdStart},
		{labelSettings, chathub.CmdSettings},
		{labelSearch, chathub.CmdSearch},
		{labelStop, chathub.CmdStop},
		{labelNext, chathub.CmdNext},
		{labelReport, chathub.CmdComplain},
	}

	for _, tt := range tests {
		s := &BotService{pending: make(map[int64]string)}
		cmds := s.normalize(555, messagePayload(tt.text))
		require.Len(t, cmds, 1, "text %q", tt.text)
		assert.Equal(t, tt.kind, cmds[0].Kind, "text %q", tt.text)
	}
}

// TestNormalizeGenderButtonAfterFilterPrompt verifies the pending-state
// disambiguation of the Male/Female buttons.
func TestNormalizeGenderButtonAfterFilterPrompt(t *testing.T) {
	s := &BotService{pending: make(map[int64]string)}
	s.setPending(555, awaitingFilterGender)

	cmds := s.normalize(555, messagePayload(labelFemale))

	require.Len(t, cmds, 1)
	assert.Equal(t, chathub.CmdSearchByGender, cmds[0].Kind)
	assert.Equal(t, models.GenderFemale, cmds[0].Gender)

	// Consumed: the next press sets the user's own gender.
	cmds = s.normalize(555, messagePayload(labelFemale))
	require.Len(t, cmds, 1)
	assert.Equal(t, chathub.CmdSetGender, cmds[0].Kind)
}

// TestNormalizeFansOutAttachments verifies a multi-attachment message
// becomes one relay command per attachment.
func TestNormalizeFansOutAttachments(t *testing.T) {
	s := &BotService{pending: make(map[int64]string)}

	cmds := s.normalize(555, messagePayload("look",
		attachment{Type: "photo", Photo: &mediaItem{ID: 10, OwnerID: 555}},
		attachment{Type: "doc", Doc: &mediaItem{ID: 20, OwnerID: 555}},
	))

	require.Len(t, cmds, 2)
	assert.Equal(t, chathub.CmdMessage, cmds[0].Kind)
	assert.Equal(t, "photo555_10", cmds[0].Content.FileRef)
	assert.Equal(t, "look", cmds[0].Content.Caption)
	assert.Equal(t, "doc555_20", cmds[1].Content.FileRef)
}

// TestNormalizePlainText verifies free text relays as a message.
func TestNormalizePlainText(t *testing.T) {
	s := &BotService{pending: make(map[int64]string)}

	cmds := s.normalize(555, messagePayload("hi there"))

	require.Len(t, cmds, 1)
	assert.Equal(t, chathub.CmdMessage, cmds[0].Kind)
	assert.Equal(t, "hi there", cmds[0].Content.Text)
}

// TestAttachmentContentRefs verifies the VK attachment reference format
// for every media kind, including negative (group) owner ids.
func TestAttachmentContentRefs(t *testing.T) {
	photo, ok := attachmentContent(attachment{Type: "photo", Photo: &mediaItem{ID: 7, OwnerID: -100}}, "")
	require.True(t, ok)
	assert.Equal(t, models.ContentPhoto, photo.Kind)
	assert.Equal(t, "photo-100_7", photo.FileRef)

	video, ok := attachmentContent(attachment{Type: "video", Video: &mediaItem{ID: 8, OwnerID: 42}}, "cap")
	require.True(t, ok)
	assert.Equal(t, models.ContentVideo, video.Kind)
	assert.Equal(t, "video42_8", video.FileRef)
	assert.Equal(t, "cap", video.Caption)

	voice, ok := attachmentContent(attachment{Type: "audio_message", AudioMessage: &mediaItem{ID: 9, OwnerID: 42}}, "ignored")
	require.True(t, ok)
	assert.Equal(t, models.ContentVoice, voice.Kind)
	assert.Equal(t, "doc42_9", voice.FileRef, "voice messages travel as doc attachments")
	assert.Empty(t, voice.Caption)

	_, ok = attachmentContent(attachment{Type: "sticker"}, "")
	assert.False(t, ok, "unsupported attachment kinds are dropped")
}
