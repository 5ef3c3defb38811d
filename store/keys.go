package store

import "strings"

// Key namespaces. Every per-user record is keyed by the digits-only identity
// so a session written for "573001234567@c.us" is found again regardless of
// which provider-qualified form the webhook delivers.
const (
	sessionPrefix    = "wa:"
	rateLimitPrefix  = "rl:"
	optOutPrefix     = "optout:"
	messagePrefix    = "msgid:"
	startDedupPrefix = "start_dedup:"
	templatePrefix   = "tmpl:"
)

// Identity extracts the stable per-user key from a Green-API chatId.
// "573001234567@c.us" -> "573001234567". Strips everything from the first
// "@" onwards; an id without "@" is returned as-is.
func Identity(chatID string) string {
	chatID = strings.TrimSpace(chatID)
	if i := strings.IndexByte(chatID, '@'); i >= 0 {
		return chatID[:i]
	}
	return chatID
}

func SessionKey(identity string) string    { return sessionPrefix + identity }
func RateLimitKey(identity string) string  { return rateLimitPrefix + identity }
func OptOutKey(identity string) string     { return optOutPrefix + identity }
func MessageKey(messageID string) string   { return messagePrefix + messageID }
func StartDedupKey(identity string) string { return startDedupPrefix + identity }
func TemplateKey(name string) string       { return templatePrefix + name }
