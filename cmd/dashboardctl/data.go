package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-campaign-dashboard/components/dashboard"
)

type dataFlags struct {
	Seed uint64 `help:"Seed the generator for reproducible output (0 is random)."`
}

func (f dataFlags) generator() *dashboard.Generator {
	if f.Seed == 0 {
		return dashboard.NewGenerator()
	}
	return dashboard.NewGenerator(dashboard.WithSeed(f.Seed))
}

type campaignsCmd struct {
	Data   dataFlags `embed:""`
	Search string    `help:"Case-insensitive match on name or source."`
	Status string    `default:"all" enum:"all,active,paused,completed" help:"Status filter."`
	Sort   string    `default:"name" help:"Sort field (camelCase, snake_case or PascalCase)."`
	Desc   bool      `help:"Sort descending."`
	Page   int       `default:"1" help:"1-based page number."`
	Format string    `default:"table" enum:"table,json,yaml" help:"Output format."`
}

func (c *campaignsCmd) Run(out io.Writer) error {
	direction := string(dashboard.SortAsc)
	if c.Desc {
		direction = string(dashboard.SortDesc)
	}
	controls, err := dashboard.NewJSONSchemaValidator().ValidateTableQuery(dashboard.TableQuery{
		Search:    c.Search,
		Status:    c.Status,
		Sort:      c.Sort,
		Direction: direction,
		Page:      c.Page,
	})
	if err != nil {
		return err
	}
	page := dashboard.ComputeVisible(c.Data.generator().GenerateCampaigns(), controls)

	switch c.Format {
	case "json":
		return writeJSON(out, page)
	case "yaml":
		return writeYAML(out, page)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tSOURCE\tBUDGET\tSPEND\tCTR\tCONVERSIONS\tROAS")
	for _, row := range page.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.0f\t%.2f%%\t%d\t%.2fx\n",
			row.Name, row.Status, row.Source, row.Budget, row.Spend, row.CTR, row.Conversions, row.ROAS)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "page %d of %d (%d matching, sorted by %s %s)\n",
		page.CurrentPage, page.TotalPages, page.TotalFiltered, strcase.ToCamel(controls.SortField), controls.SortDirection)
	return err
}

type exportCmd struct {
	Data dataFlags `embed:""`
	Out  string    `short:"o" default:"campaign_data.csv" help:"Destination file, - for stdout."`
}

func (c *exportCmd) Run(ctx context.Context, out io.Writer) error {
	campaigns, err := c.Data.generator().FetchCampaigns(ctx)
	if err != nil {
		return err
	}
	if c.Out == "-" {
		return dashboard.WriteCampaignsCSV(out, campaigns)
	}
	file, err := os.Create(c.Out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("dashboardctl: create %s: %w", c.Out, err)
	}
	if err := dashboard.WriteCampaignsCSV(file, campaigns); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("dashboardctl: close %s: %w", c.Out, err)
	}
	_, err = fmt.Fprintf(out, "wrote %d campaigns to %s\n", len(campaigns), c.Out)
	return err
}

type chartCmd struct {
	Data   dataFlags `embed:""`
	Format string    `default:"table" enum:"table,json,yaml" help:"Output format."`
}

func (c *chartCmd) Run(out io.Writer) error {
	points := c.Data.generator().GenerateChartData()
	switch c.Format {
	case "json":
		return writeJSON(out, points)
	case "yaml":
		return writeYAML(out, points)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tREVENUE\tUSERS\tCONVERSIONS\tIMPRESSIONS")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", p.Label(), p.Revenue, p.Users, p.Conversions, p.Impressions)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
