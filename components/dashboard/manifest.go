package dashboard

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
	// DefaultLayoutPath is the embedded layout used when no file is configured.
	DefaultLayoutPath = "layouts/default.yaml"
)

//go:embed layouts/*.yaml
var embeddedLayouts embed.FS

// LayoutManifest models a YAML document describing the dashboard tabs, the
// widgets placed on each, and any extra widget definitions.
type LayoutManifest struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []ManifestWidget `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Tabs    []ManifestTab    `json:"tabs" yaml:"tabs"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestWidget describes an extra widget definition shipped with a manifest.
type ManifestWidget struct {
	Definition  WidgetDefinition `json:"definition" yaml:"definition"`
	Provider    ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestProvider captures discovery metadata about a provider implementation.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Entry        string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// ManifestTab is one dashboard view and its widget slots, in display order.
type ManifestTab struct {
	Code              Tab            `json:"code" yaml:"code"`
	Title             string         `json:"title" yaml:"title"`
	Subtitle          string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	TitleLocalized    LocalizedText  `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	SubtitleLocalized LocalizedText  `json:"subtitle_localized,omitempty" yaml:"subtitle_localized,omitempty"`
	Slots             []ManifestSlot `json:"slots" yaml:"slots"`
}

// ManifestSlot places a widget on a tab.
type ManifestSlot struct {
	ID     string         `json:"id" yaml:"id"`
	Widget string         `json:"widget" yaml:"widget"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Span   int            `json:"span,omitempty" yaml:"span,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// DefaultLayoutManifest decodes the embedded layout.
func DefaultLayoutManifest() (*LayoutManifest, error) {
	f, err := embeddedLayouts.Open(DefaultLayoutPath)
	if err != nil {
		return nil, fmt.Errorf("dashboard: open embedded layout: %w", err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, err
	}
	doc.Source = "embedded:" + DefaultLayoutPath
	return doc, nil
}

// LoadManifestFile reads a manifest from disk, registers its widgets against the registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*LayoutManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions and provider metadata from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *LayoutManifest) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterDefinition(widget.Definition); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", widget.Definition.Code, doc.Source, err)
		}
		r.recordProviderMetadata(widget.Definition.Code, widget.Provider)
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*LayoutManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the manifest structure: known tabs, unique slot ids and
// widget codes present. Use Check to validate against a registry.
func (doc *LayoutManifest) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Definition.Code == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing definition.code", idx)
		}
		if widget.Definition.Name == "" {
			return fmt.Errorf("dashboard: manifest widget %s missing definition.name", widget.Definition.Code)
		}
		if _, exists := seen[widget.Definition.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s", widget.Definition.Code)
		}
		seen[widget.Definition.Code] = struct{}{}
	}

	if len(doc.Tabs) == 0 {
		return fmt.Errorf("dashboard: manifest declares no tabs")
	}
	tabs := make(map[Tab]struct{}, len(doc.Tabs))
	slots := map[string]struct{}{}
	for _, tab := range doc.Tabs {
		if !tab.Code.Valid() {
			return fmt.Errorf("dashboard: manifest tab %q is not a dashboard tab", tab.Code)
		}
		if _, exists := tabs[tab.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates tab %s", tab.Code)
		}
		tabs[tab.Code] = struct{}{}
		if tab.Title == "" {
			return fmt.Errorf("dashboard: manifest tab %s missing title", tab.Code)
		}
		for idx, slot := range tab.Slots {
			if slot.ID == "" {
				return fmt.Errorf("dashboard: tab %s slot %d is missing id", tab.Code, idx)
			}
			if slot.Widget == "" {
				return fmt.Errorf("dashboard: slot %s is missing widget", slot.ID)
			}
			if slot.Span < 0 || slot.Span > maxSpan {
				return fmt.Errorf("dashboard: slot %s span %d outside 1..%d", slot.ID, slot.Span, maxSpan)
			}
			if _, exists := slots[slot.ID]; exists {
				return fmt.Errorf("dashboard: manifest duplicates slot id %s", slot.ID)
			}
			slots[slot.ID] = struct{}{}
		}
	}
	return nil
}

// Check validates every slot against the registered definitions and their
// configuration schemas. All problems are reported together.
func (doc *LayoutManifest) Check(registry ProviderRegistry, validator ConfigValidator) error {
	if validator == nil {
		validator = noopConfigValidator{}
	}
	var errs []error
	for _, tab := range doc.Tabs {
		for _, slot := range tab.Slots {
			def, ok := registry.Definition(slot.Widget)
			if !ok {
				errs = append(errs, fmt.Errorf("dashboard: slot %s uses unknown widget %s", slot.ID, slot.Widget))
				continue
			}
			if err := validator.Validate(def, slot.Config); err != nil {
				errs = append(errs, fmt.Errorf("dashboard: slot %s: %w", slot.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (doc *LayoutManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Tabs {
		for j := range doc.Tabs[i].Slots {
			if doc.Tabs[i].Slots[j].Span == 0 {
				doc.Tabs[i].Slots[j].Span = maxSpan
			}
		}
	}
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" &&
		p.Summary == "" &&
		p.Entry == "" &&
		p.Package == "" &&
		p.DocsURL == "" &&
		len(p.Capabilities) == 0
}
