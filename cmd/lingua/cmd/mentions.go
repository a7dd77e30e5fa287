package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/mention"
)

// mentionsCmd represents the mentions command.
var mentionsCmd = &cobra.Command{
	Use:   "mentions [text...]",
	Short: "Find languages a text talks about",
	Long: `Find languages mentioned in a text, as opposed to the language the
text is written in. Names are matched against the search locale's catalog,
tolerating inflection through fuzzy matching.

Examples:
  lingua mentions "I am learning Polish and French" --search-locale en
  lingua mentions "Dies ist ein Text über Englisch" --search-locale de --display-locale en`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no text provided")
		}

		cfg := GetConfig()

		searchLocale, _ := cmd.Flags().GetString("search-locale")
		if searchLocale == "" {
			return errors.New("no search locale provided")
		}
		displayLocale, _ := cmd.Flags().GetString("display-locale")

		cat := catalog.New(catalog.ResolveDataDir(cfg.CatalogDir))
		matcher := mention.New(cat, cfg.MentionSettings())

		mentioned, err := matcher.FindMentioned(strings.Join(args, " "), searchLocale, displayLocale)
		if err != nil {
			return err
		}

		for _, name := range mentioned {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mentionsCmd)
	mentionsCmd.Flags().StringP("search-locale", "s", "en", "locale whose language names are searched for")
	mentionsCmd.Flags().StringP("display-locale", "d", "", "locale to translate found names into")
}
