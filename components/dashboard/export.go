package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

const (
	// ExportFileName is the download name of the campaign CSV export.
	ExportFileName = "campaign_data.csv"
	// ExportContentType is the media type of the campaign CSV export.
	ExportContentType = "text/csv; charset=utf-8"
)

var exportHeader = []string{
	"Campaign Name",
	"Status",
	"Source",
	"Budget",
	"Spend",
	"Impressions",
	"Clicks",
	"CTR",
	"Conversions",
	"ROAS",
}

// ExportHeader returns the CSV column names in output order.
func ExportHeader() []string {
	return append([]string(nil), exportHeader...)
}

// WriteCampaignsCSV writes the header plus one row per campaign. Callers pass
// the full dataset, not a filtered table page. Fields containing separators or
// quotes are quoted.
func WriteCampaignsCSV(w io.Writer, campaigns []Campaign) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("dashboard: write csv header: %w", err)
	}
	for _, c := range campaigns {
		if err := writer.Write(campaignRecord(c)); err != nil {
			return fmt.Errorf("dashboard: write csv row %s: %w", c.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func campaignRecord(c Campaign) []string {
	return []string{
		c.Name,
		string(c.Status),
		c.Source,
		formatNumber(c.Budget),
		formatNumber(c.Spend),
		strconv.FormatInt(c.Impressions, 10),
		strconv.FormatInt(c.Clicks, 10),
		formatNumber(c.CTR),
		strconv.FormatInt(c.Conversions, 10),
		formatNumber(c.ROAS),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
