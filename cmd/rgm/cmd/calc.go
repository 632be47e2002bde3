package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/rocketgrowth-margin/internal/api/client"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

func calcCommand() *cobra.Command {
	var (
		price    float64
		cost     float64
		extra    float64
		rate     float64
		target   float64
		size     string
		category string
		display  string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate fees, profit and margin for a sale price",
		Long: "Calculate the sales commission, VAT, logistics fee, net profit and margin\n" +
			"for a sale price, purchase cost and size tier. The commission rate is\n" +
			"resolved from --category unless --rate is given.",
		Example: `  rgm calc --price 25800 --cost 15000 --category "패션의류잡화>여성패션"
  rgm calc --price 25800 --cost 15000 --rate 0.105 --size large-1 --display detailed
  rgm calc --price 25800 --cost 15000 --remote --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tier, err := fees.ParseSize(size)
			if err != nil {
				return err
			}

			req := &apiclient.CalculateRequest{
				SalePrice:    price,
				CategoryPath: splitBreadcrumb(category),
				Cost:         cost,
				ExtraCost:    extra,
				Size:         tier,
			}
			if cmd.Flags().Changed("rate") {
				req.CommissionRate = &rate
			}
			if cmd.Flags().Changed("target") {
				req.TargetMarginRate = &target
			}

			var (
				c     *engine.Calculation
				prefs domain.Preferences
			)
			if remote() {
				c, err = newClient().Calculate(cmd.Context(), req)
				if err != nil {
					return err
				}
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				prefs = cfg.Preferences
			} else {
				eng, err := newEngine()
				if err != nil {
					return err
				}
				calc := eng.Calculate(engine.CalcRequest{
					SalePrice:        req.SalePrice,
					CommissionRate:   req.CommissionRate,
					CategoryPath:     req.CategoryPath,
					Cost:             req.Cost,
					ExtraCost:        req.ExtraCost,
					Size:             req.Size,
					TargetMarginRate: req.TargetMarginRate,
				})
				c = &calc
				prefs = eng.Preferences()
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), c)
			}
			mode, err := displayMode(display, prefs.DisplayMode)
			if err != nil {
				return err
			}
			return printCalculation(cmd.OutOrStdout(), price, c, mode)
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "sale price in won")
	cmd.Flags().Float64Var(&cost, "cost", 0, "purchase cost in won")
	cmd.Flags().Float64Var(&extra, "extra", 0, "packaging and other per-unit costs in won")
	cmd.Flags().Float64Var(&rate, "rate", 0, "commission rate as a fraction (overrides --category)")
	cmd.Flags().Float64Var(&target, "target", 0, "target margin in percent (default from config)")
	cmd.Flags().StringVar(&size, "size", string(fees.SizeMedium),
		"size tier (extra-small, small, medium, large-1, large-2, extra-large)")
	cmd.Flags().StringVar(&category, "category", "", `category breadcrumb joined with ">"`)
	cmd.Flags().StringVar(&display, "display", "", "display mode (simple, detailed; default from config)")
	cobra.CheckErr(cmd.MarkFlagRequired("price"))

	return cmd
}

// displayMode resolves the --display flag against a fallback.
func displayMode(flag string, fallback domain.DisplayMode) (domain.DisplayMode, error) {
	if flag == "" {
		return fallback, nil
	}
	mode := domain.DisplayMode(flag)
	if !mode.Valid() {
		return "", fmt.Errorf("invalid display mode %q (want simple or detailed)", flag)
	}
	return mode, nil
}
