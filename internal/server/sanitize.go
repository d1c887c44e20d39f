package server

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Chat text is shown verbatim by clients, so no markup survives
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup from relayed text and trims it
func sanitizeText(s string) string {
	cleaned := textPolicy.Sanitize(s)
	// StrictPolicy escapes entities; clients render plain text
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
