package rendering

import "strings"

// xmlEscaper escapes the characters that are special in SVG text and attributes.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML escapes text for use inside SVG markup
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}
	return xmlEscaper.Replace(text)
}

// Truncate shortens text to max runes, appending "..." when cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
