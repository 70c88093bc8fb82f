package dashboard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code: "demo.widget.string_required",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"name"},
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
	if err := validator.Validate(def, map[string]any{"name": "Dashboard"}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{}); err == nil {
		t.Fatalf("expected validation error for missing name")
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code:   "demo.widget.cache",
		Schema: map[string]any{"type": "object"},
	}
	if err := validator.Validate(def, nil); err != nil {
		t.Fatalf("unexpected error validating config: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(def, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestDefaultWidgetSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	reg := NewRegistry()

	trend, ok := reg.Definition(WidgetTrendChart)
	require.True(t, ok)
	assert.NoError(t, validator.Validate(trend, map[string]any{"metric": "revenue", "color": "#3B82F6"}))
	assert.Error(t, validator.Validate(trend, map[string]any{"metric": "profit"}))
	assert.Error(t, validator.Validate(trend, map[string]any{"metric": "users", "color": "blue"}))
	assert.Error(t, validator.Validate(trend, map[string]any{}))

	cards, ok := reg.Definition(WidgetMetricCards)
	require.True(t, ok)
	assert.NoError(t, validator.Validate(cards, map[string]any{"window_days": 7}))
	assert.Error(t, validator.Validate(cards, map[string]any{"window_days": 30}))

	settings, ok := reg.Definition(WidgetSettings)
	require.True(t, ok)
	assert.NoError(t, validator.Validate(settings, map[string]any{"section": "security"}))
	assert.Error(t, validator.Validate(settings, map[string]any{"section": "billing"}))
}

func TestValidateTableQueryDefaults(t *testing.T) {
	controls, err := NewJSONSchemaValidator().ValidateTableQuery(TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTableControls(), controls)
}

func TestValidateTableQueryNormalizesSortField(t *testing.T) {
	q, err := ParseTableQuery(url.Values{
		"search":    {"google"},
		"status":    {"Paused"},
		"sort":      {"start_date"},
		"direction": {"DESC"},
		"page":      {"2"},
	})
	require.NoError(t, err)

	controls, err := NewJSONSchemaValidator().ValidateTableQuery(q)
	require.NoError(t, err)
	assert.Equal(t, TableControls{
		SearchTerm:    "google",
		StatusFilter:  "paused",
		SortField:     "startDate",
		SortDirection: SortDesc,
		CurrentPage:   2,
	}, controls)
}

func TestValidateTableQueryRejectsInvalidValues(t *testing.T) {
	validator := NewJSONSchemaValidator()
	cases := map[string]TableQuery{
		"status":    {Status: "archived"},
		"sort":      {Sort: "revenue"},
		"direction": {Direction: "sideways"},
		"page":      {Page: -1},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := validator.ValidateTableQuery(q)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}

	_, err := ParseTableQuery(url.Values{"page": {"two"}})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
