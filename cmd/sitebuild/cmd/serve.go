package cmd

import (
	"context"
	"time"

	"github.com/otherdev/site/internal/app"
	"github.com/otherdev/site/internal/icons"
	"github.com/otherdev/site/internal/pubsub"
	"github.com/otherdev/site/internal/server"
	"github.com/otherdev/site/internal/storage"
	"github.com/otherdev/site/internal/watch"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const rebuildDelay = 200 * time.Millisecond

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build once and serve a preview of the output",
	Long: `Build once and serve a preview of the icons, cursors and metadata.

With --watch the icon directory and the metadata file are watched; changes
trigger a rebuild and the preview page refreshes itself.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		builder, err := do.Invoke[*app.Builder](state.injector)
		if err != nil {
			return err
		}
		if _, err := builder.Build(ctx); err != nil {
			return err
		}

		addr := state.cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		srv := server.New(server.Dependencies{
			Loader:    do.MustInvoke[*icons.Loader](state.injector),
			Store:     do.MustInvoke[storage.Store](state.injector),
			OutputDir: state.cfg.OutputDir,
			Metadata:  do.MustInvoke[app.MetadataSource](state.injector),
			Poll:      serveWatch,
		})

		g, ctx := errgroup.WithContext(ctx)
		if serveWatch {
			if err := startWatching(ctx, g, builder); err != nil {
				return err
			}
		}
		g.Go(func() error {
			return srv.Start(ctx, addr)
		})
		return g.Wait()
	},
}

// startWatching subscribes the rebuild loop and starts the file watcher in g.
func startWatching(ctx context.Context, g *errgroup.Group, builder *app.Builder) error {
	bridge := do.MustInvoke[*pubsub.WatermillBridge](state.injector)
	if err := watch.Rebuild(ctx, bridge, rebuildDelay, func(ctx context.Context) error {
		_, err := builder.Build(ctx)
		return err
	}); err != nil {
		return err
	}

	watcher := watch.NewWatcher(bridge, state.cfg.IconsDir, state.cfg.MetadataFile)
	g.Go(func() error {
		defer bridge.Close()
		return watcher.Run(ctx)
	})
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild when icons or metadata change")
	rootCmd.AddCommand(serveCmd)
}
