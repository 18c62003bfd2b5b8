package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"visacheck/internal/visa/domain/shared"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the visa types that can be checked",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, c := range shared.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", c, c.Label())
			}
		},
	}
}

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the accepted passport countries of issue",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, c := range shared.AcceptedCountries() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		},
	}
}
