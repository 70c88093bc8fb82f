package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func headerMap(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestViewerFromHeaders(t *testing.T) {
	viewer := ViewerFromHeaders(headerMap(map[string]string{
		HeaderUserID:         " user-42 ",
		HeaderColorScheme:    `"dark"`,
		HeaderAcceptLanguage: "fr;q=0.1, es-MX;q=0.9",
	}), "")

	assert.Equal(t, "user-42", viewer.UserID)
	assert.True(t, viewer.PrefersDarkScheme)
	assert.Equal(t, "es-mx", viewer.Locale)
}

func TestViewerFromHeadersLocaleOverride(t *testing.T) {
	viewer := ViewerFromHeaders(headerMap(map[string]string{
		HeaderAcceptLanguage: "es-MX",
		HeaderColorScheme:    "light",
	}), "FR")

	assert.Equal(t, "fr", viewer.Locale)
	assert.False(t, viewer.PrefersDarkScheme)
	assert.Empty(t, viewer.UserID)
}

func TestPreferredLocale(t *testing.T) {
	cases := map[string]string{
		"en-GB;q=0.9, fr": "fr",
		"en-GB, fr;q=0.5": "en-gb",
		"":                "",
		"en-GB;q=high":    "",
	}
	for header, want := range cases {
		assert.Equal(t, want, PreferredLocale(header), header)
	}
}
