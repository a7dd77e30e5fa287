package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lingua/internal/catalog"
)

// languagesCmd represents the languages command.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the language catalog for a locale",
	Long: `Print the language name table for a locale, or resolve a single code.

Examples:
  lingua languages --locale de
  lingua languages --locale de --code en`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		locale, _ := cmd.Flags().GetString("locale")
		code, _ := cmd.Flags().GetString("code")

		cat := catalog.New(catalog.ResolveDataDir(cfg.CatalogDir))

		if code != "" {
			name, err := cat.NameFor(code, locale)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s\t%s", code, name)
			if three, err := catalog.ThreeLetterCode(code); err == nil {
				line += "\t" + three
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		}

		languages, err := cat.NamesForLocale(locale)
		if err != nil {
			return err
		}

		codes := make([]string, 0, len(languages))
		for c := range languages {
			codes = append(codes, c)
		}
		sort.Strings(codes)

		for _, c := range codes {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c, languages[c]); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.Flags().StringP("locale", "l", "en", "locale of the language table")
	languagesCmd.Flags().StringP("code", "c", "", "resolve a single ISO 639-1 code instead of listing")
}
