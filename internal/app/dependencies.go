package app

import (
	"log/slog"

	"github.com/otherdev/site/internal/config"
	"github.com/otherdev/site/internal/cursors"
	"github.com/otherdev/site/internal/export"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/pubsub"
	"github.com/otherdev/site/internal/site"
	"github.com/otherdev/site/internal/storage"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// NewInjector wires the build services for cfg on top of fsys.
func NewInjector(cfg *config.Config, fsys afero.Fs, logger *slog.Logger) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, fsys)
	do.ProvideValue(injector, logger)

	do.Provide(injector, func(i do.Injector) (*icons.Loader, error) {
		return icons.NewLoader(do.MustInvoke[afero.Fs](i), cfg.IconsDir, logger), nil
	})
	do.Provide(injector, func(i do.Injector) (storage.Store, error) {
		return storage.NewAferoStore(do.MustInvoke[afero.Fs](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (MetadataSource, error) {
		fs := do.MustInvoke[afero.Fs](i)
		return func() (site.Metadata, error) {
			return site.LoadMetadataFile(fs, cfg.MetadataFile)
		}, nil
	})
	do.Provide(injector, func(i do.Injector) (*cursors.Generator, error) {
		return cursors.NewGenerator(
			do.MustInvoke[*icons.Loader](i),
			do.MustInvoke[storage.Store](i),
			cfg.OutputDir,
			cursors.WithStrict(cfg.StrictIcons),
			cursors.WithLogger(logger),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*export.Exporter, error) {
		format, err := export.ParseFormat(cfg.DataFormat)
		if err != nil {
			return nil, err
		}
		return export.NewExporter(do.MustInvoke[storage.Store](i), cfg.DataDir, format), nil
	})
	do.Provide(injector, func(i do.Injector) (*Builder, error) {
		generator, err := do.Invoke[*cursors.Generator](i)
		if err != nil {
			return nil, err
		}
		exporter, err := do.Invoke[*export.Exporter](i)
		if err != nil {
			return nil, err
		}
		return NewBuilder(BuilderDeps{
			Generator: generator,
			Loader:    do.MustInvoke[*icons.Loader](i),
			Exporter:  exporter,
			Metadata:  do.MustInvoke[MetadataSource](i),
			Strict:    cfg.StrictIcons,
			Logger:    logger,
		}), nil
	})
	do.Provide(injector, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(false), nil
	})

	return injector
}
