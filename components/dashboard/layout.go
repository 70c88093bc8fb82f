package dashboard

import (
	"fmt"
	"maps"
)

// maxSpan is the width of the dashboard grid in columns.
const maxSpan = 12

// TabLayout is a tab resolved for display: localized header plus the widget
// instances in order.
type TabLayout struct {
	Tab      Tab              `json:"tab"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle,omitempty"`
	Widgets  []WidgetInstance `json:"widgets"`
}

// Layout is the set of tabs built from a manifest.
type Layout struct {
	manifest *LayoutManifest
	tabs     map[Tab]ManifestTab
}

// NewLayout indexes a validated manifest by tab.
func NewLayout(doc *LayoutManifest) (Layout, error) {
	if doc == nil {
		return Layout{}, fmt.Errorf("dashboard: layout manifest is nil")
	}
	if err := doc.Validate(); err != nil {
		return Layout{}, err
	}
	tabs := make(map[Tab]ManifestTab, len(doc.Tabs))
	for _, tab := range doc.Tabs {
		tabs[tab.Code] = tab
	}
	return Layout{manifest: doc, tabs: tabs}, nil
}

// DefaultLayout builds the layout from the embedded manifest.
func DefaultLayout() (Layout, error) {
	doc, err := DefaultLayoutManifest()
	if err != nil {
		return Layout{}, err
	}
	return NewLayout(doc)
}

// Manifest returns the manifest the layout was built from.
func (l Layout) Manifest() *LayoutManifest {
	return l.manifest
}

// Tabs returns the tabs declared by the manifest in navigation order.
func (l Layout) Tabs() []Tab {
	if l.manifest == nil {
		return nil
	}
	out := make([]Tab, 0, len(l.manifest.Tabs))
	for _, tab := range l.manifest.Tabs {
		out = append(out, tab.Code)
	}
	return out
}

// Tab resolves one tab for the locale. Widget instances carry a copy of the
// slot configuration and no data.
func (l Layout) Tab(tab Tab, locale string) (TabLayout, bool) {
	def, ok := l.tabs[tab]
	if !ok {
		return TabLayout{}, false
	}
	resolved := TabLayout{
		Tab:      tab,
		Title:    ResolveLocalizedValue(def.TitleLocalized, locale, def.Title),
		Subtitle: ResolveLocalizedValue(def.SubtitleLocalized, locale, def.Subtitle),
		Widgets:  make([]WidgetInstance, 0, len(def.Slots)),
	}
	for idx, slot := range def.Slots {
		resolved.Widgets = append(resolved.Widgets, WidgetInstance{
			ID:            slot.ID,
			DefinitionID:  slot.Widget,
			Tab:           tab,
			Title:         slot.Title,
			Span:          slot.Span,
			Position:      idx,
			Configuration: maps.Clone(slot.Config),
		})
	}
	return resolved, true
}
