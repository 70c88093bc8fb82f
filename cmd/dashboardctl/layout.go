package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

type layoutCmd struct {
	Path   string `arg:"" optional:"" type:"existingfile" help:"Layout manifest; the embedded layout when omitted."`
	Format string `default:"table" enum:"table,yaml,json" help:"Output format."`
}

func (c *layoutCmd) Run(out io.Writer) error {
	doc, err := c.manifest()
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	registry := dashboard.NewRegistry()
	if err := registry.LoadManifestDocument(doc); err != nil {
		return err
	}
	if err := doc.Check(registry, dashboard.NewJSONSchemaValidator()); err != nil {
		return err
	}

	switch c.Format {
	case "yaml":
		return writeYAML(out, doc)
	case "json":
		return writeJSON(out, doc)
	}
	fmt.Fprintf(out, "%s (version %s): %d tabs\n", doc.Source, doc.Version, len(doc.Tabs))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAB\tSLOT\tWIDGET\tSPAN")
	for _, tab := range doc.Tabs {
		for _, slot := range tab.Slots {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", tab.Code, slot.ID, slot.Widget, slot.Span)
		}
	}
	return tw.Flush()
}

func (c *layoutCmd) manifest() (*dashboard.LayoutManifest, error) {
	if c.Path == "" {
		return dashboard.DefaultLayoutManifest()
	}
	doc, err := dashboard.ReadManifest(c.Path)
	if err != nil {
		return nil, fmt.Errorf("dashboardctl: %w", err)
	}
	return doc, nil
}
