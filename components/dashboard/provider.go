package dashboard

import (
	"context"
	"io"
)

// WidgetData is the payload a provider hands to the template.
type WidgetData map[string]any

// WidgetDefinition describes a widget type that can be placed on a tab.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetInstance is one placed widget with its configuration and, once
// resolved, its provider data.
type WidgetInstance struct {
	ID            string         `json:"id"`
	DefinitionID  string         `json:"definition"`
	Tab           Tab            `json:"tab"`
	Title         string         `json:"title,omitempty"`
	Span          int            `json:"span,omitempty"`
	Position      int            `json:"position"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Data          WidgetData     `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// WidgetContext gives providers the widget, the viewer and the state snapshot
// being rendered.
type WidgetContext struct {
	Instance WidgetInstance
	Viewer   ViewerContext
	State    AppState
}

// Provider produces the data for a widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch calls f(ctx, meta).
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// ProviderRegistry resolves widget definitions and providers by code.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
}

// Renderer is satisfied by go-template renderers.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
