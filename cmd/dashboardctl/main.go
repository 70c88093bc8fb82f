package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
)

type cli struct {
	Serve     serveCmd     `cmd:"" help:"Serve the dashboard over HTTP."`
	Campaigns campaignsCmd `cmd:"" help:"Print one page of the campaign table."`
	Export    exportCmd    `cmd:"" help:"Write the campaign dataset as CSV."`
	Chart     chartCmd     `cmd:"" help:"Print the 30-day time series."`
	Layout    layoutCmd    `cmd:"" help:"Validate and print a tab layout manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("dashboardctl"),
		kong.Description("Campaign analytics dashboard server and data tools."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

const readHeaderTimeout = 5 * time.Second
