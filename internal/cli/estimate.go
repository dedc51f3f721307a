package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fenceworks/fencecalc/internal/config"
	"github.com/fenceworks/fencecalc/internal/estimate"
	"github.com/fenceworks/fencecalc/internal/export"
	"github.com/fenceworks/fencecalc/internal/importer"
	"github.com/fenceworks/fencecalc/internal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatXLSX = "xlsx"
)

// estimateOpts holds the command-line flags for the estimate command.
type estimateOpts struct {
	configPath string  // fence catalog / tolerances TOML (built-in defaults if absent)
	pricesPath string  // price table TOML (built-in defaults if absent)
	format     string  // output format: "text", "json", or "xlsx"
	output     string  // output file path ("" writes text/json to stdout)
	fenceType  string  // default fence type for rows that omit one
	height     float64 // default fence height for rows that omit one
}

// newEstimateCmd creates the estimate command. It imports a layout file
// (format chosen by extension), runs the full calculation pass, and
// writes the estimate.
func newEstimateCmd() *cobra.Command {
	opts := estimateOpts{
		format:    formatText,
		fenceType: "wood-privacy",
		height:    6,
	}

	cmd := &cobra.Command{
		Use:   "estimate [layout-file]",
		Short: "Compute a material and cost estimate from a fence layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatJSON, formatXLSX:
			default:
				return fmt.Errorf("unknown format %q (want text, json, or xlsx)", opts.format)
			}
			if opts.format == formatXLSX && opts.output == "" {
				return fmt.Errorf("--format xlsx requires --out")
			}
			return runEstimate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "fence catalog config file (TOML)")
	cmd.Flags().StringVarP(&opts.pricesPath, "prices", "p", "", "price table file (TOML)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json, or xlsx")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.fenceType, "fence-type", opts.fenceType, "fence type for segments that do not specify one")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "fence height in feet for segments that do not specify one")

	return cmd
}

func runEstimate(ctx context.Context, path string, opts *estimateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	prices, err := config.LoadPrices(opts.pricesPath)
	if err != nil {
		return err
	}

	segments, err := importLayout(ctx, path, importer.Defaults{
		FenceType: opts.fenceType,
		Height:    opts.height,
	})
	if err != nil {
		return err
	}
	logger.Debugf("imported %d segments from %s", len(segments), path)

	p := newProgress(logger)
	est, err := estimate.New(cfg, prices).Estimate(segments)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Estimated %.1f ft of fence across %d runs", est.TotalLength, len(est.Runs)))

	switch opts.format {
	case formatXLSX:
		if err := export.ExportXLSX(opts.output, est); err != nil {
			return err
		}
		logger.Infof("wrote %s", opts.output)
		return nil
	case formatJSON:
		if opts.output != "" {
			if err := export.ExportJSON(opts.output, est); err != nil {
				return err
			}
			logger.Infof("wrote %s", opts.output)
			return nil
		}
		return export.WriteJSON(os.Stdout, est)
	default:
		return writeTextSummary(os.Stdout, est)
	}
}

// importLayout picks an importer by file extension and surfaces the
// importer's row-level errors and warnings through the logger.
func importLayout(ctx context.Context, path string, defaults importer.Defaults) ([]model.Segment, error) {
	logger := loggerFromContext(ctx)

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		result = importer.ImportJSON(path, defaults)
	case ".csv", ".txt":
		result = importer.ImportCSV(path, defaults)
	case ".xlsx":
		result = importer.ImportExcel(path, defaults)
	case ".dxf":
		result = importer.ImportDXF(path, defaults)
	default:
		return nil, fmt.Errorf("unsupported layout file type %q (want .json, .csv, .xlsx, or .dxf)", filepath.Ext(path))
	}

	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error(e)
		}
		return nil, fmt.Errorf("layout import failed with %d error(s)", len(result.Errors))
	}
	if len(result.Segments) == 0 {
		return nil, fmt.Errorf("layout file %s contains no fence segments", path)
	}
	return result.Segments, nil
}

// writeTextSummary prints a human-readable takeoff to w.
func writeTextSummary(w *os.File, est model.Estimate) error {
	fmt.Fprintf(w, "Estimate %s\n\n", est.ID)
	fmt.Fprintf(w, "Fence length:   %.1f ft (%d segments, %d runs)\n", est.TotalLength, est.SegmentCount, len(est.Runs))

	for _, rs := range est.Runs {
		shape := "open"
		if rs.Closed {
			shape = "closed"
		}
		fmt.Fprintf(w, "  %-8s %7.1f ft  %2d segments  %s  posts: %d end, %d line, %d corner, %d gate\n",
			rs.ID, rs.Length, rs.SegmentCount, shape,
			rs.Posts.End, rs.Posts.Line, rs.Posts.Corner, rs.Posts.Gate)
	}

	fmt.Fprintf(w, "\nMaterials\n")
	if est.PanelCount > 0 {
		fmt.Fprintf(w, "  Panels:        %d\n", est.PanelCount)
	}
	if est.LinearFeet > 0 {
		fmt.Fprintf(w, "  Roll stock:    %.1f linear ft\n", est.LinearFeet)
	}
	fmt.Fprintf(w, "  Posts:         %d (%d end, %d line, %d corner, %d gate)\n",
		est.Posts.Total(), est.Posts.End, est.Posts.Line, est.Posts.Corner, est.Posts.Gate)
	if est.Gates.Single+est.Gates.Double > 0 {
		fmt.Fprintf(w, "  Gate kits:     %d single, %d double\n", est.Gates.Single, est.Gates.Double)
	}
	fmt.Fprintf(w, "  Hardware sets: %d\n", est.Hardware)
	fmt.Fprintf(w, "  Concrete bags: %d\n", est.ConcreteBags)

	if len(est.StockPlan.Usage) > 0 {
		fmt.Fprintf(w, "\nRail stock\n")
		for _, u := range est.StockPlan.Usage {
			fmt.Fprintf(w, "  %2d x %5.1f ft  (%.1f ft waste)\n", u.Count, u.Length, u.Waste)
		}
	}

	fmt.Fprintf(w, "\nCosts\n")
	fmt.Fprintf(w, "  Materials:    $%10.2f\n", est.Costs.MaterialsCost)
	fmt.Fprintf(w, "  Labor:        $%10.2f\n", est.Costs.LaborCost)
	fmt.Fprintf(w, "  Subtotal:     $%10.2f\n", est.Costs.Subtotal)
	fmt.Fprintf(w, "  Tax:          $%10.2f\n", est.Costs.Tax)
	fmt.Fprintf(w, "  Markup:       $%10.2f\n", est.Costs.Markup)
	fmt.Fprintf(w, "  Total:        $%10.2f  ($%.2f/ft)\n", est.Costs.Total, est.Costs.CostPerFoot)
	return nil
}
