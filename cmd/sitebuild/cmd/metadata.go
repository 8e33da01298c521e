package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/otherdev/site/internal/app"
	"github.com/otherdev/site/internal/export"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	metadataFormat string
	metadataCheck  bool
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Print the site metadata record",
	Long: `Print the site metadata record, with any override file applied.

With --check the record is validated first and the command fails when a
field is missing or malformed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(metadataFormat)
		if err != nil {
			return err
		}
		source, err := do.Invoke[app.MetadataSource](state.injector)
		if err != nil {
			return err
		}
		meta, err := source()
		if err != nil {
			return err
		}
		if metadataCheck {
			if err := meta.Validate(); err != nil {
				return fmt.Errorf("metadata is invalid: %w", err)
			}
		}

		var out []byte
		switch format {
		case export.FormatYAML:
			out, err = yaml.Marshal(meta)
		default:
			out, err = json.MarshalIndent(meta, "", "  ")
			out = append(out, '\n')
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	metadataCmd.Flags().StringVar(&metadataFormat, "format", "json", "output format: json or yaml")
	metadataCmd.Flags().BoolVar(&metadataCheck, "check", false, "validate the record before printing it")
	rootCmd.AddCommand(metadataCmd)
}
