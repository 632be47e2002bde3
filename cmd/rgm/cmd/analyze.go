package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/rocketgrowth-margin/internal/api/client"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

func analyzeCommand() *cobra.Command {
	var (
		cost     float64
		extra    float64
		target   float64
		estimate bool
		size     string
		display  string
	)

	cmd := &cobra.Command{
		Use:   "analyze [product.json]",
		Short: "Analyze a scraped product",
		Long: "Analyze a product record (JSON, from a file or stdin) the way the\n" +
			"listing page overlay does: resolve its category, recommend a size,\n" +
			"compute the fee breakdown and grade the margin.",
		Example: `  rgm analyze product.json --cost 15000
  cat product.json | rgm analyze --estimate-cost --display detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := readProduct(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var tier fees.SizeTier
			if size != "" {
				if tier, err = fees.ParseSize(size); err != nil {
					return err
				}
			}

			mode, err := displayMode(display, "")
			if err != nil {
				return err
			}

			req := &apiclient.AnalyzeRequest{
				Product:      product,
				EstimateCost: estimate,
				ExtraCost:    extra,
				Size:         tier,
				DisplayMode:  mode,
			}
			if cmd.Flags().Changed("cost") {
				req.Cost = &cost
			}
			if cmd.Flags().Changed("target") {
				req.TargetMarginRate = &target
			}

			var a *engine.Analysis
			if remote() {
				if a, err = newClient().Analyze(cmd.Context(), req); err != nil {
					return err
				}
			} else {
				eng, err := newEngine()
				if err != nil {
					return err
				}
				ar := engine.AnalysisRequest{
					Product:      req.Product,
					Cost:         req.Cost,
					EstimateCost: req.EstimateCost,
					ExtraCost:    req.ExtraCost,
					Size:         req.Size,
				}
				if req.TargetMarginRate != nil || req.DisplayMode != "" {
					prefs := eng.Preferences()
					if req.TargetMarginRate != nil {
						prefs.TargetMarginRate = *req.TargetMarginRate
					}
					if req.DisplayMode != "" {
						prefs.DisplayMode = req.DisplayMode
					}
					ar.Preferences = &prefs
				}
				analysis := eng.Analyze(ar)
				a = &analysis
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), a)
			}
			return printAnalysis(cmd.OutOrStdout(), a)
		},
	}

	cmd.Flags().Float64Var(&cost, "cost", 0, "purchase cost in won")
	cmd.Flags().Float64Var(&extra, "extra", 0, "packaging and other per-unit costs in won")
	cmd.Flags().Float64Var(&target, "target", 0, "target margin in percent (default from config)")
	cmd.Flags().BoolVar(&estimate, "estimate-cost", false, "estimate cost from the sale price when --cost is absent")
	cmd.Flags().StringVar(&size, "size", "", "size tier (recommended from the category when empty)")
	cmd.Flags().StringVar(&display, "display", "", "display mode (simple, detailed; default from config)")

	return cmd
}

// readProduct decodes a product from the named file, or stdin when no file
// or "-" is given.
func readProduct(stdin io.Reader, args []string) (domain.Product, error) {
	var p domain.Product

	r := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return p, fmt.Errorf("opening product file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decoding product: %w", err)
	}
	return p, nil
}
