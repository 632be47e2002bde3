package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
)

func feesCommand() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "fees [size]",
		Short: "Show the logistics fee table",
		Long: "Show the VAT-inclusive Rocket Growth logistics fee for every price\n" +
			"bracket and size tier, or the fee and its inbound/shipping split for one\n" +
			"size at --price.",
		Example: `  rgm fees
  rgm fees medium --price 25800
  rgm fees --remote --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				size, err := fees.ParseSize(args[0])
				if err != nil {
					return err
				}

				var cell *fees.FeeCell
				if remote() {
					if cell, err = newClient().LookupFee(cmd.Context(), size, price); err != nil {
						return err
					}
				} else {
					eng, err := newEngine()
					if err != nil {
						return err
					}
					c := eng.Schedule().Cell(price, size)
					cell = &c
				}

				if jsonOutput() {
					return outputJSON(out, cell)
				}
				return printFeeCell(out, cell)
			}

			var (
				brackets []fees.PriceBracket
				cells    []fees.FeeCell
			)
			if remote() {
				table, err := newClient().LogisticsFees(cmd.Context())
				if err != nil {
					return err
				}
				brackets, cells = table.Brackets, table.Cells
			} else {
				eng, err := newEngine()
				if err != nil {
					return err
				}
				brackets, cells = eng.Schedule().Brackets, eng.Schedule().Cells()
			}

			if jsonOutput() {
				return outputJSON(out, cells)
			}
			return printFeeTable(out, brackets, cells)
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "sale price in won used with a size argument")

	return cmd
}
