package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator compiles widget schemas and validates configuration maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the widget schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	var payload map[string]any
	if config == nil {
		payload = map[string]any{}
	} else {
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("dashboard: marshal config for %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashboard: normalize config for %s: %w", def.Code, err)
		}
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) validatePayload(def WidgetDefinition, payload map[string]any) error {
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}

func (v *JSONSchemaValidator) schemaFor(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetDefinition, map[string]any) error { return nil }

// ErrInvalidQuery matches every table query validation failure.
var ErrInvalidQuery = errors.New("dashboard: invalid table query")

const tableQuerySchemaCode = "campaign.table.query"

// TableQuery is the transport form of the campaign table controls.
type TableQuery struct {
	Search    string `json:"search,omitempty" query:"search"`
	Status    string `json:"status,omitempty" query:"status"`
	Sort      string `json:"sort,omitempty" query:"sort"`
	Direction string `json:"direction,omitempty" query:"direction"`
	Page      int    `json:"page,omitempty" query:"page"`
}

// ParseTableQuery reads the table query from URL values. Only the page is
// parsed here; everything else is checked by ValidateTableQuery.
func ParseTableQuery(values url.Values) (TableQuery, error) {
	q := TableQuery{
		Search:    values.Get("search"),
		Status:    strings.ToLower(strings.TrimSpace(values.Get("status"))),
		Sort:      strings.TrimSpace(values.Get("sort")),
		Direction: strings.ToLower(strings.TrimSpace(values.Get("direction"))),
	}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return TableQuery{}, fmt.Errorf("%w: page %q is not a number", ErrInvalidQuery, raw)
		}
		if page < 1 {
			return TableQuery{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidQuery, page)
		}
		q.Page = page
	}
	return q, nil
}

func tableQuerySchema() map[string]any {
	statuses := []string{StatusAll}
	for _, s := range CampaignStatuses() {
		statuses = append(statuses, string(s))
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"search":    map[string]any{"type": "string", "maxLength": 200},
			"status":    map[string]any{"type": "string", "enum": statuses},
			"sort":      map[string]any{"type": "string", "enum": SortFieldNames()},
			"direction": map[string]any{"type": "string", "enum": []string{string(SortAsc), string(SortDesc)}},
			"page":      map[string]any{"type": "integer", "minimum": 1},
		},
		"additionalProperties": false,
	}
}

// ValidateTableQuery checks q against the table query schema and returns the
// controls it describes, with defaults for omitted values.
func (v *JSONSchemaValidator) ValidateTableQuery(q TableQuery) (TableControls, error) {
	if field, ok := NormalizeSortField(q.Sort); ok {
		q.Sort = field
	}
	payload := map[string]any{}
	if q.Search != "" {
		payload["search"] = q.Search
	}
	if q.Status != "" {
		payload["status"] = q.Status
	}
	if q.Sort != "" {
		payload["sort"] = q.Sort
	}
	if q.Direction != "" {
		payload["direction"] = q.Direction
	}
	if q.Page != 0 {
		payload["page"] = q.Page
	}
	if err := v.validatePayload(WidgetDefinition{Code: tableQuerySchemaCode, Schema: tableQuerySchema()}, payload); err != nil {
		return TableControls{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	controls := DefaultTableControls()
	controls.SearchTerm = q.Search
	if q.Status != "" {
		controls.StatusFilter = q.Status
	}
	if q.Sort != "" {
		controls.SortField = q.Sort
	}
	if q.Direction != "" {
		controls.SortDirection = SortDirection(q.Direction)
	}
	if q.Page != 0 {
		controls.CurrentPage = q.Page
	}
	return controls, nil
}
