// Package pipeline provides the core rendering pipeline for Genotile.
//
// This package implements the complete read → plan → render → encode
// pipeline that is used by the CLI and the tile server. Centralizing
// this logic keeps behavior consistent across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Read: Parse contigs from a FASTA file (plain or gzip, or stdin)
//  2. Plan: Compute per-contig padding and the canvas dimensions
//  3. Render: Paint one pixel per character onto the canvas, plus
//     contig labels for multi-contig inputs
//  4. Encode: Serialize the canvas as PNG
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Input:  "genome.fa.gz",
//	    Output: "genome.png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifact
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genotile/genotile/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultWorkers is the number of contigs painted concurrently.
var DefaultWorkers = runtime.NumCPU()

// Format constants for output formats.
const (
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Read options
	Input   string `json:"input"`             // FASTA path, "-" for stdin
	Contig  string `json:"contig,omitempty"`  // render a single contig by name
	Refresh bool   `json:"refresh,omitempty"` // bypass the artifact cache

	// Render options
	Palette  string `json:"palette,omitempty"` // TOML palette file, empty for defaults
	Workers  int    `json:"workers,omitempty"`
	NoTitles bool   `json:"no_titles,omitempty"` // suppress contig labels

	// Encode options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution in logs.
	RunID string

	// Artifact is the encoded output image.
	Artifact []byte

	// InputHash is the content hash of the input file.
	InputHash string

	// Width and Height are the canvas dimensions in pixels.
	Width  int64
	Height int64

	// ContigCount and TotalLength describe the planned layout.
	// TotalLength includes padding.
	ContigCount int
	TotalLength int64

	// Stats contains timing and pixel counts.
	Stats Stats

	// CacheHit reports whether the artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ReadTime   time.Duration
	PlanTime   time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
	Drawn      int64
	Skipped    int64
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if !ValidFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: "+o.Format)
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
