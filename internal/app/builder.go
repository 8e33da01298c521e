package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/otherdev/site/internal/cursors"
	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/export"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/site"
)

// MetadataSource returns the current site record. It is called once per build
// so edits to an override file are picked up by rebuilds.
type MetadataSource func() (site.Metadata, error)

// Report summarizes one build.
type Report struct {
	BuildID      string
	Cursors      []cursors.File
	DataFiles    []string
	MissingIcons []string
	Duration     time.Duration
}

// Builder runs the full asset build: cursor files first, then the icon set
// and metadata data files.
type Builder struct {
	generator *cursors.Generator
	loader    *icons.Loader
	exporter  *export.Exporter
	metadata  MetadataSource
	iconKeys  []site.IconKey
	strict    bool
	logger    *slog.Logger
	now       func() time.Time
}

// BuilderDeps holds the services a Builder needs.
type BuilderDeps struct {
	Generator *cursors.Generator
	Loader    *icons.Loader
	Exporter  *export.Exporter
	Metadata  MetadataSource
	IconKeys  []site.IconKey
	// Strict turns a missing icon into a build failure.
	Strict bool
	Logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(deps BuilderDeps) *Builder {
	b := &Builder{
		generator: deps.Generator,
		loader:    deps.Loader,
		exporter:  deps.Exporter,
		metadata:  deps.Metadata,
		iconKeys:  deps.IconKeys,
		strict:    deps.Strict,
		logger:    deps.Logger,
		now:       time.Now,
	}
	if b.iconKeys == nil {
		b.iconKeys = site.DefaultIconKeys()
	}
	if b.metadata == nil {
		b.metadata = func() (site.Metadata, error) { return site.DefaultMetadata(), nil }
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Build runs every step once. Running it again overwrites the previous output.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	start := b.now()
	report := Report{BuildID: uuid.NewString()}
	logger := b.logger.With("build_id", report.BuildID)

	result, err := b.generator.Generate(ctx)
	if err != nil {
		return report, fmt.Errorf("generate cursors: %w", err)
	}
	report.Cursors = result.Files
	report.MissingIcons = append(report.MissingIcons, result.Missing...)

	set, err := site.BuildIconSet(ctx, b.loader, b.iconKeys, logger)
	if err != nil {
		return report, fmt.Errorf("build icon set: %w", err)
	}
	report.MissingIcons = append(report.MissingIcons, set.Missing()...)
	if b.strict && len(set.Missing()) > 0 {
		return report, fmt.Errorf("build icon set: %w: %s", domain.ErrIconNotFound, strings.Join(set.Missing(), ", "))
	}

	meta, err := b.metadata()
	if err != nil {
		return report, fmt.Errorf("load metadata: %w", err)
	}

	report.DataFiles, err = b.exporter.Write(ctx, export.Data{
		BuildID:     report.BuildID,
		GeneratedAt: start,
		Metadata:    meta,
		Icons:       set,
	})
	if err != nil {
		return report, fmt.Errorf("export data: %w", err)
	}

	report.Duration = b.now().Sub(start)
	if len(report.MissingIcons) > 0 {
		logger.Warn("Build finished with missing icons", "missing", report.MissingIcons)
	}
	logger.Info("Build complete",
		"cursors", len(report.Cursors),
		"data_files", len(report.DataFiles),
		"duration", report.Duration,
	)
	return report, nil
}
