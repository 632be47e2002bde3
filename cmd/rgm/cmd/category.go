package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
)

func categoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "category <breadcrumb...>",
		Short: "Resolve the commission rate for a category path",
		Long: "Resolve the commission keyword, rate and typical size tier for a\n" +
			"category breadcrumb. Pass each level as an argument or one argument\n" +
			`joined with ">".`,
		Example: `  rgm category 가전디지털 컴퓨터 노트북
  rgm category "뷰티>스킨케어>화장품" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := splitBreadcrumb(strings.Join(args, ">"))

			var m engine.CategoryMatch
			if remote() {
				res, err := newClient().ResolveCategory(cmd.Context(), path)
				if err != nil {
					return err
				}
				m = res.CategoryMatch
			} else {
				eng, err := newEngine()
				if err != nil {
					return err
				}
				m = eng.ResolveCategory(path)
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), m)
			}
			return printCategory(cmd.OutOrStdout(), &m)
		},
	}
}
