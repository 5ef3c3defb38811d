package outbound

import "strings"

// sanitizeReplacer normalizes typographic Unicode punctuation that WhatsApp
// can reject or mis-render:
//
//	em dash (U+2014)            -> hyphen
//	curly single quotes (U+2018/U+2019) -> straight apostrophe
//	curly double quotes (U+201C/U+201D) -> straight double quote
var sanitizeReplacer = strings.NewReplacer(
	"—", "-",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Sanitize is applied to every outbound body before it reaches the provider.
func Sanitize(text string) string {
	return sanitizeReplacer.Replace(text)
}
