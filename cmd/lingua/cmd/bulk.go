package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// bulkCmd represents the bulk command.
var bulkCmd = &cobra.Command{
	Use:   "bulk [file...]",
	Short: "Detect languages for a batch of texts",
	Long: `Detect the language of every line in the given files in one batch.

Each non-empty line is one detection request. Reads stdin when the file
argument is "-". Inputs whose detection fails are quarantined and logged,
the rest of the batch still succeeds.

Examples:
  lingua bulk texts.txt
  lingua bulk texts.txt --locale de --format json
  cat texts.txt | lingua bulk -`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
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

		texts, err := readInputTexts(cmd, args)
		if err != nil {
			return err
		}
		if len(texts) == 0 {
			return errors.New("no texts found in input")
		}

		engine := newEngine(cfg)

		results, err := engine.DetectMany(cmd.Context(), texts, locale)
		if err != nil {
			return err
		}

		out, closeFn, err := outputWriter(cmd.OutOrStdout(), outputFile)
		if err != nil {
			return err
		}
		defer closeFn()

		return renderResults(out, results, format)
	},
}

// readInputTexts collects one text per non-empty line from the given files,
// "-" meaning stdin.
func readInputTexts(cmd *cobra.Command, args []string) ([]string, error) {
	var texts []string
	for _, arg := range args {
		var (
			scanner *bufio.Scanner
			closeFn func()
		)
		if arg == "-" {
			scanner = bufio.NewScanner(cmd.InOrStdin())
			closeFn = func() {}
		} else {
			f, err := os.Open(arg) //nolint:gosec // G304: user-chosen input path
			if err != nil {
				return nil, fmt.Errorf("failed to open input file: %w", err)
			}
			scanner = bufio.NewScanner(f)
			closeFn = func() { _ = f.Close() }
		}

		for scanner.Scan() {
			line := scanner.Text()
			if line != "" {
				texts = append(texts, line)
			}
		}
		err := scanner.Err()
		closeFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read input %s: %w", arg, err)
		}
	}
	return texts, nil
}

func init() {
	rootCmd.AddCommand(bulkCmd)
	bulkCmd.Flags().StringP("locale", "l", "", "display locale for language names (e.g. de, pl)")
	bulkCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml")
	bulkCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
}
