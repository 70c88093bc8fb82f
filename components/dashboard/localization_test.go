package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLocalizedValue(t *testing.T) {
	values := LocalizedText{
		"en":    "Dashboard Overview",
		"es":    "Resumen",
		"es-MX": "Panel general",
	}
	assert.Equal(t, "Panel general", ResolveLocalizedValue(values, "es-mx", "fallback"))
	assert.Equal(t, "Panel general", ResolveLocalizedValue(values, "es_MX", "fallback"))
	assert.Equal(t, "Resumen", ResolveLocalizedValue(values, "es-ar", "fallback"))
	assert.Equal(t, "Dashboard Overview", ResolveLocalizedValue(values, "fr", "Dashboard Overview"))
	assert.Equal(t, "Dashboard Overview", ResolveLocalizedValue(nil, "es", "Dashboard Overview"))
}

func TestResolveLocalizedValueDefaultKey(t *testing.T) {
	values := LocalizedText{"default": "Reports"}
	assert.Equal(t, "Reports", ResolveLocalizedValue(values, "", "fallback"))
	assert.Equal(t, "Reports", ResolveLocalizedValue(values, "de", "fallback"))
}
