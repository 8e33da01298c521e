package cmd

import (
	"github.com/otherdev/site/internal/app"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then rebuild whenever icons or metadata change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder, err := do.Invoke[*app.Builder](state.injector)
		if err != nil {
			return err
		}
		if _, err := builder.Build(cmd.Context()); err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		if err := startWatching(ctx, g, builder); err != nil {
			return err
		}
		state.logger.Info("Watching for changes", "icons_dir", state.cfg.IconsDir)
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
