package cmd

import (
	"fmt"

	"github.com/otherdev/site/internal/app"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var buildStrict bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the cursor files and the global data files",
	Long: `Generate the cursor files and the global data files.

Missing icons are logged and skipped unless --strict (or SITE_STRICT_ICONS)
is set, in which case the build fails before the affected files are
written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildStrict {
			state.cfg.StrictIcons = true
		}
		builder, err := do.Invoke[*app.Builder](state.injector)
		if err != nil {
			return err
		}

		report, err := builder.Build(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Build %s finished in %s\n", report.BuildID, report.Duration)
		for _, f := range report.Cursors {
			fmt.Fprintf(out, "  cursor  %s (%d bytes)\n", f.Path, f.Bytes)
		}
		for _, path := range report.DataFiles {
			fmt.Fprintf(out, "  data    %s\n", path)
		}
		for _, name := range report.MissingIcons {
			fmt.Fprintf(out, "  missing %s\n", name)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail the build when an icon is missing")
	rootCmd.AddCommand(buildCmd)
}
