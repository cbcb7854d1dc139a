package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/games/danmaku"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the resolved configuration as YAML",
	Long: `Print the configuration a session of the variant would use, after the
variant adjustments, the --config overlay and the --difficulty preset.
The output is a complete file usable with --config.

Examples:
  danmaku config
  danmaku config danmaku3d --difficulty hard > hard3d.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, args []string) error {
	v, err := variantOf(args)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(flagConfig, v, config.ParsePreset(flagDifficulty))
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// variantOf maps an optional variant ID argument to the engine flavour.
func variantOf(args []string) (config.Variant, error) {
	if len(args) == 0 {
		return config.VariantFlat, nil
	}
	switch args[0] {
	case danmaku.IDFlat:
		return config.VariantFlat, nil
	case danmaku.IDDepth:
		return config.VariantDepth, nil
	}
	return "", fmt.Errorf("unknown variant %q, run 'danmaku list' to see available variants", args[0])
}
