package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/lingua/internal/bulk"
)

const (
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
	outputFormatText = "text"
)

// validateFormat checks the requested output format.
func validateFormat(format string) error {
	switch format {
	case outputFormatText, outputFormatJSON, outputFormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)", format)
	}
}

// outputWriter returns the destination for rendered results, either stdout
// or the configured output file.
func outputWriter(out io.Writer, outputFile string) (io.Writer, func(), error) {
	if outputFile == "" {
		return out, func() {}, nil
	}
	f, err := os.Create(outputFile) //nolint:gosec // G304: user-chosen output path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// renderResults writes detection results in the requested format.
func renderResults(out io.Writer, results []bulk.LanguageInformation, format string) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case outputFormatYAML:
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(results)
	default:
		for _, info := range results {
			line := info.Language
			if info.Code != "" {
				line += fmt.Sprintf(" [%s", info.Code)
				if info.ThreeLetterCode != "" {
					line += "/" + info.ThreeLetterCode
				}
				line += "]"
			}
			if len(info.MentionedLanguages) > 0 {
				line += fmt.Sprintf(" mentions: %s", strings.Join(info.MentionedLanguages, ", "))
			}
			if _, err := fmt.Fprintf(out, "%s\t%s\n", line, info.Text); err != nil {
				return err
			}
		}
		return nil
	}
}
