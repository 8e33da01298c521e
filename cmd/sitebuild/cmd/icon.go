package cmd

import (
	"fmt"

	"github.com/otherdev/site/internal/domain"
	"github.com/otherdev/site/internal/icons"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var (
	iconSize    int
	iconVariant string
)

var iconCmd = &cobra.Command{
	Use:   "icon <name>",
	Short: "Render a single icon to stdout",
	Long: `Render a single icon from the icon directory to stdout.

Examples:
  sitebuild icon external-link
  sitebuild icon circle-arrow-left --variant cursor --size 48`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, err := domain.ParseIconVariant(iconVariant)
		if err != nil {
			return err
		}
		loader, err := do.Invoke[*icons.Loader](state.injector)
		if err != nil {
			return err
		}

		icon, err := loader.Load(cmd.Context(), icons.Request{
			Name:    args[0],
			Size:    iconSize,
			Variant: variant,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), icon.Markup)
		return nil
	},
}

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Inspect the icon directory",
}

var iconsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the icons available in the icon directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := do.Invoke[*icons.Loader](state.injector)
		if err != nil {
			return err
		}
		names, err := loader.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	iconCmd.Flags().IntVar(&iconSize, "size", 0, "pixel size (0 uses the variant default)")
	iconCmd.Flags().StringVar(&iconVariant, "variant", "inline", "inline or cursor")
	rootCmd.AddCommand(iconCmd)

	iconsCmd.AddCommand(iconsListCmd)
	rootCmd.AddCommand(iconsCmd)
}
