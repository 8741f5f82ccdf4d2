package models

// Content kinds a chat can relay between partners.
const (
	ContentText     = "text"
	ContentPhoto    = "photo"
	ContentVideo    = "video"
	ContentVoice    = "voice"
	ContentDocument = "document"
)

// Content is one message payload moving through the router. For media
// kinds FileRef holds the platform-native reference (a Telegram FileID
// or a VK attachment string) that only the origin platform's API can
// resolve.
type Content struct {
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	FileRef string `json:"file_ref,omitempty"`
	Caption string `json:"caption,omitempty"`
	// FromPartner marks relayed chat content, as opposed to service
	// notices. Deliverers render it with the partner prefix and
	// neutralize any markup the destination would interpret.
	FromPartner bool `json:"from_partner,omitempty"`
}

// TextContent builds a plain text payload.
func TextContent(text string) Content {
	return Content{Kind: ContentText, Text: text}
}

// MediaContent builds a media payload with an optional caption.
func MediaContent(kind, fileRef, caption string) Content {
	return Content{Kind: kind, FileRef: fileRef, Caption: caption}
}
