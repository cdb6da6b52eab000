// Package device summarizes raw User-Agent strings into short display names
// for consent audit evidence. Raw UA strings are still persisted verbatim;
// the summary is what reviewers and parents see.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent reduces a User-Agent header to "<Browser> <major> on <OS>".
// Unknown or empty agents return "Unknown Device".
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return "Unknown Device"
	}

	if i := strings.IndexByte(version, '.'); i > 0 {
		version = version[:i]
	}

	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteByte(' ')
		b.WriteString(version)
	}
	if os := parsed.OSInfo().Name; os != "" {
		b.WriteString(" on ")
		b.WriteString(os)
	}
	if parsed.Mobile() {
		b.WriteString(" (mobile)")
	}
	return b.String()
}
