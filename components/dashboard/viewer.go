package dashboard

import (
	"strings"

	"golang.org/x/text/language"
)

// Request headers that identify the viewer.
const (
	HeaderUserID         = "X-User-ID"
	HeaderColorScheme    = "Sec-CH-Prefers-Color-Scheme"
	HeaderAcceptLanguage = "Accept-Language"
)

// ViewerFromHeaders resolves the viewer from request headers. A non-empty
// locale overrides Accept-Language. Both transports use it so a request
// resolves to the same viewer whichever router serves it.
func ViewerFromHeaders(header func(string) string, locale string) ViewerContext {
	viewer := ViewerContext{
		UserID:            strings.TrimSpace(header(HeaderUserID)),
		PrefersDarkScheme: strings.EqualFold(strings.Trim(header(HeaderColorScheme), `" `), "dark"),
		Locale:            normalizeLocale(locale),
	}
	if viewer.Locale == "" {
		viewer.Locale = PreferredLocale(header(HeaderAcceptLanguage))
	}
	return viewer
}

// PreferredLocale returns the highest weighted tag of an Accept-Language
// header in lower case, or "" when the header names no language.
func PreferredLocale(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if tag == language.Und {
			continue
		}
		return strings.ToLower(tag.String())
	}
	return ""
}
