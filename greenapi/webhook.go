package greenapi

import "strings"

// Webhook notification payload. Green-API emits many notification types
// (stateInstanceChanged and friends) whose typeWebhook values vary across
// API versions, so extraction inspects the payload shape instead of
// allowlisting typeWebhook.
type WebhookPayload struct {
	TypeWebhook string       `json:"typeWebhook,omitempty"`
	IDMessage   string       `json:"idMessage,omitempty"`
	SenderData  *SenderData  `json:"senderData,omitempty"`
	MessageData *MessageData `json:"messageData,omitempty"`
}

type SenderData struct {
	ChatID     string `json:"chatId"`
	ChatName   string `json:"chatName,omitempty"`
	Sender     string `json:"sender,omitempty"`
	SenderName string `json:"senderName,omitempty"`
}

type MessageData struct {
	TypeMessage             string                   `json:"typeMessage"`
	TextMessageData         *TextMessageData         `json:"textMessageData,omitempty"`
	ExtendedTextMessageData *ExtendedTextMessageData `json:"extendedTextMessageData,omitempty"`
	TemplateButtonReplyData *TemplateButtonReplyData `json:"templateButtonReplyMessage,omitempty"`
}

type TextMessageData struct {
	TextMessage string `json:"textMessage"`
}

// ExtendedTextMessageData carries the text of quoted/forwarded messages.
type ExtendedTextMessageData struct {
	Text string `json:"text"`
}

// TemplateButtonReplyData is a quick-reply button tap. SelectedID matches
// the numeric button ids the bot registers, so it feeds the same token
// matching as typed input.
type TemplateButtonReplyData struct {
	SelectedID          string `json:"selectedId"`
	SelectedDisplayText string `json:"selectedDisplayText,omitempty"`
}

// Inbound is the normalized tuple the core consumes.
type Inbound struct {
	ChatID    string
	Text      string
	MessageID string
}

// ExtractInbound reduces a webhook payload to (chatId, text, messageId).
// Group-originated events, non-text message types and empty texts are
// discarded (ok=false) before they reach the conversation pipeline.
func ExtractInbound(p *WebhookPayload) (Inbound, bool) {
	if p == nil || p.SenderData == nil {
		return Inbound{}, false
	}
	chatID := strings.TrimSpace(p.SenderData.ChatID)
	if chatID == "" || strings.HasSuffix(chatID, "@g.us") {
		return Inbound{}, false
	}
	if p.MessageData == nil {
		return Inbound{}, false
	}

	var text string
	switch p.MessageData.TypeMessage {
	case "textMessage":
		if p.MessageData.TextMessageData != nil {
			text = p.MessageData.TextMessageData.TextMessage
		}
	case "extendedTextMessage":
		if p.MessageData.ExtendedTextMessageData != nil {
			text = p.MessageData.ExtendedTextMessageData.Text
		}
	case "templateButtonsReplyMessage":
		if p.MessageData.TemplateButtonReplyData != nil {
			text = p.MessageData.TemplateButtonReplyData.SelectedID
		}
	default:
		return Inbound{}, false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Inbound{}, false
	}
	return Inbound{ChatID: chatID, Text: text, MessageID: strings.TrimSpace(p.IDMessage)}, true
}

// ChatID converts a digits-only identity back to the provider-qualified
// address used on sends.
func ChatID(identity string) string {
	if strings.Contains(identity, "@") {
		return identity
	}
	return identity + "@c.us"
}
