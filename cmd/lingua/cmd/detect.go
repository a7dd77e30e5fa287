package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lingua/internal/bulk"
	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/config"
	"github.com/MeKo-Tech/lingua/internal/detector"
	"github.com/MeKo-Tech/lingua/internal/mention"
)

// newEngine assembles the detection engine from the resolved configuration.
func newEngine(cfg *config.Config) *bulk.Engine {
	cat := catalog.New(catalog.ResolveDataDir(cfg.CatalogDir))
	matcher := mention.New(cat, cfg.MentionSettings())
	gateway := detector.New(cfg.DetectorSettings())
	return bulk.NewEngine(gateway, cat, matcher)
}

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Detect the language of a text",
	Long: `Detect the language a text is written in using the external detector.

The result carries the language name, its ISO codes and any languages the
text mentions. With --locale the name is translated into that locale.

Examples:
  lingua detect "the quick brown fox"
  lingua detect "szybki brązowy lis" --locale de
  lingua detect "Dies ist ein Text" --format json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no text provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		if err := validateFormat(format); err != nil {
			return err
		}

		locale := ""
		if cmd.Flags().Changed("locale") {
			locale, _ = cmd.Flags().GetString("locale")
		}

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		engine := newEngine(cfg)

		info, err := engine.Detect(cmd.Context(), strings.Join(args, " "), locale)
		if err != nil {
			return err
		}

		out, closeFn, err := outputWriter(cmd.OutOrStdout(), outputFile)
		if err != nil {
			return err
		}
		defer closeFn()

		var results []bulk.LanguageInformation
		if info != nil {
			results = []bulk.LanguageInformation{*info}
		}
		return renderResults(out, results, format)
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringP("locale", "l", "", "display locale for language names (e.g. de, pl)")
	detectCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml")
	detectCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
}
