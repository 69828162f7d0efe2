package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/crawl"
	"github.com/fwojciec/foxmark/query"
	"github.com/fwojciec/foxmark/registry"
	"github.com/fwojciec/foxmark/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Marks      foxmark.MarkService
	History    foxmark.HistoryService
	Tags       foxmark.TagService
	Index      *sqlite.Index
	Registry   *registry.Registry
	Sanitizer  foxmark.Sanitizer
	Normalizer foxmark.Normalizer
	Engine     *query.Engine
	Fetcher    foxmark.Fetcher
	Downloader *crawl.Downloader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Import   ImportCmd   `cmd:"" help:"Import a Firefox bookmark backup"`
	Download DownloadCmd `cmd:"" help:"Download page content for pending marks"`
	Seed     SeedCmd     `cmd:"" help:"Rebuild the search index from stored marks"`
	Search   SearchCmd   `cmd:"" help:"Search stored marks"`
	Serve    ServeCmd    `cmd:"" help:"Serve the JSONP search API"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File  string `arg:"" help:"Firefox bookmark backup (JSON) or a bookmarkbackups directory"`
	Prune bool   `help:"Hard-delete marks missing from the backup"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Concurrency int     `short:"c" default:"8" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    []string `arg:"" help:"Search terms"`
	Match    string   `default:"all" enum:"all,any,phrase,extended" help:"Match mode"`
	Sort     string   `default:"relevance" enum:"relevance,attr_desc,attr_asc" help:"Sort mode"`
	SortAttr string   `name:"sort-attr" default:"modified" help:"Attribute for attribute sorts"`
	MaxAge   string   `name:"max-age" help:"Only match marks modified within this window (e.g. 720h)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8072" help:"Listen address"`
}
