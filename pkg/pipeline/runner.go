package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/genotile/genotile/pkg/cache"
	"github.com/genotile/genotile/pkg/errors"
	"github.com/genotile/genotile/pkg/fasta"
	"github.com/genotile/genotile/pkg/layout"
	"github.com/genotile/genotile/pkg/palette"
	"github.com/genotile/genotile/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Hierarchy layout.Hierarchy
	Logger    *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Hierarchy: layout.Default(),
		Logger:    logger,
	}
}

// Execute runs the complete read → plan → render → encode pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Cache lookup. Stdin can only be read once, so it is never cached.
	var cacheKey string
	if opts.Input != "-" {
		hash, err := hashInput(opts.Input)
		if err != nil {
			return nil, err
		}
		result.InputHash = hash
		keyOpts := cache.ArtifactKeyOpts{Format: opts.Format, Contig: opts.Contig}
		if opts.Palette != "" {
			pdata, err := os.ReadFile(opts.Palette)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read palette %s", opts.Palette)
			}
			keyOpts.Palette = cache.Hash(pdata)
		}
		cacheKey = cache.ArtifactKey(hash, keyOpts)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				logger.Info("artifact cache hit", "key", cacheKey[:16])
				result.Artifact = data
				result.CacheHit = true
				return result, nil
			}
		}
	}

	pal, err := loadPalette(opts.Palette)
	if err != nil {
		return nil, err
	}

	// Stage 1: Read
	readStart := time.Now()
	contigs, err := r.readContigs(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ReadTime = time.Since(readStart)
	result.ContigCount = len(contigs)
	logger.Info("read input",
		"contigs", len(contigs),
		"duration", result.Stats.ReadTime)

	// Stage 2: Plan
	planStart := time.Now()
	lengths := make([]layout.NamedLength, len(contigs))
	for i, c := range contigs {
		lengths[i] = layout.NamedLength{Name: c.Name, Length: c.Length()}
	}
	segments, total := layout.PlanSegments(r.Hierarchy, lengths)
	if total > r.Hierarchy.Capacity() {
		return nil, errors.New(errors.ErrCodeOutOfCanvas, "input exceeds layout capacity")
	}
	width, height := r.Hierarchy.Size(total)
	// Inputs shorter than one full line only activate the X tier; the
	// canvas still needs a row of pixels to draw on.
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	mapper := layout.MapperFor(r.Hierarchy, total)
	result.Stats.PlanTime = time.Since(planStart)
	result.TotalLength = total
	result.Width, result.Height = width, height
	logger.Info("planned layout",
		"total", total,
		"width", width,
		"height", height,
		"duration", result.Stats.PlanTime)

	// Stage 3: Render
	renderStart := time.Now()
	rcs := make([]render.Contig, len(contigs))
	for i, c := range contigs {
		rcs[i] = render.Contig{Segment: segments[i], Seq: c.Seq}
	}
	img := render.NewCanvas(width, height)
	stats, err := render.Draw(ctx, img, mapper, pal, rcs, opts.Workers)
	if err != nil {
		return nil, err
	}
	result.Stats.Drawn = stats.Drawn
	result.Stats.Skipped = stats.Skipped
	if len(rcs) > 1 && !opts.NoTitles {
		if err := render.DrawTitles(img, r.Hierarchy, rcs); err != nil {
			return nil, err
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered canvas",
		"drawn", stats.Drawn,
		"skipped", stats.Skipped,
		"duration", result.Stats.RenderTime)

	// Stage 4: Encode
	encodeStart := time.Now()
	artifact, err := render.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.EncodeTime = time.Since(encodeStart)
	logger.Info("encoded artifact",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.EncodeTime)

	if cacheKey != "" && !opts.Refresh {
		_ = r.Cache.Set(ctx, cacheKey, artifact, cache.TTLArtifact)
	}
	return result, nil
}

// readContigs loads either the whole input or one plucked contig.
func (r *Runner) readContigs(ctx context.Context, opts Options) ([]fasta.Record, error) {
	if opts.Contig != "" {
		seq, err := fasta.PluckContig(ctx, opts.Input, opts.Contig)
		if err != nil {
			return nil, err
		}
		return []fasta.Record{{Name: opts.Contig, Seq: seq}}, nil
	}
	return fasta.ReadContigs(ctx, opts.Input)
}

// hashInput computes the content hash of the input file.
func hashInput(path string) (string, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	hash, err := cache.HashReader(rc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash input")
	}
	return hash, nil
}

func loadPalette(path string) (*palette.Palette, error) {
	if path == "" {
		return palette.Default(), nil
	}
	return palette.Load(path)
}
