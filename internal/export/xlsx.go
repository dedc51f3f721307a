// Package export writes finished estimates to deliverable file formats:
// an Excel bill-of-materials workbook and a machine-readable JSON document.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fenceworks/fencecalc/internal/model"
)

// ExportXLSX writes the estimate as a multi-sheet Excel workbook: a
// Summary sheet with totals and costs, a Posts sheet with per-run post
// counts, a Stock Plan sheet with aggregated rail stock usage, and a
// Cut List sheet with one row per cut piece.
func ExportXLSX(path string, est model.Estimate) error {
	if len(est.Runs) == 0 {
		return fmt.Errorf("estimate has no fence runs to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, est); err != nil {
		return err
	}
	if err := writePostsSheet(f, est); err != nil {
		return err
	}
	if err := writeStockSheet(f, est); err != nil {
		return err
	}
	if err := writeCutListSheet(f, est); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

// writeRows fills a sheet starting at A1 from a row-major grid.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, est model.Estimate) error {
	rows := [][]interface{}{
		{"Estimate", est.ID},
		{},
		{"Total fence length (ft)", est.TotalLength},
		{"Segments", est.SegmentCount},
		{"Runs", len(est.Runs)},
		{"Panels", est.PanelCount},
		{"Roll stock (linear ft)", est.LinearFeet},
		{"Posts (total)", est.Posts.Total()},
		{"Gate kits (single)", est.Gates.Single},
		{"Gate kits (double)", est.Gates.Double},
		{"Hardware sets", est.Hardware},
		{"Concrete bags", est.ConcreteBags},
		{},
		{"Materials cost", est.Costs.MaterialsCost},
		{"Labor cost", est.Costs.LaborCost},
		{"Subtotal", est.Costs.Subtotal},
		{"Tax", est.Costs.Tax},
		{"Markup", est.Costs.Markup},
		{"Total", est.Costs.Total},
		{"Cost per foot", est.Costs.CostPerFoot},
	}
	return writeRows(f, "Summary", rows)
}

func writePostsSheet(f *excelize.File, est model.Estimate) error {
	rows := [][]interface{}{
		{"Run", "Length (ft)", "Segments", "Closed", "End", "Line", "Corner", "Gate"},
	}
	for _, rs := range est.Runs {
		rows = append(rows, []interface{}{
			rs.ID, rs.Length, rs.SegmentCount, rs.Closed,
			rs.Posts.End, rs.Posts.Line, rs.Posts.Corner, rs.Posts.Gate,
		})
	}
	rows = append(rows, []interface{}{
		"Total", est.TotalLength, est.SegmentCount, "",
		est.Posts.End, est.Posts.Line, est.Posts.Corner, est.Posts.Gate,
	})
	return writeRows(f, "Posts", rows)
}

func writeStockSheet(f *excelize.File, est model.Estimate) error {
	rows := [][]interface{}{
		{"Stock length (ft)", "Count", "Waste (ft)", "Cost"},
	}
	for _, u := range est.StockPlan.Usage {
		rows = append(rows, []interface{}{u.Length, u.Count, u.Waste, u.Cost})
	}
	rows = append(rows, []interface{}{
		"Total", len(est.StockPlan.Bins), est.StockPlan.TotalWaste, est.StockPlan.TotalCost,
	})
	return writeRows(f, "Stock Plan", rows)
}

func writeCutListSheet(f *excelize.File, est model.Estimate) error {
	rows := [][]interface{}{
		{"Stock #", "Stock length (ft)", "Piece", "Cut length (ft)"},
	}
	for i, bin := range est.StockPlan.Bins {
		for j, piece := range bin.Pieces {
			rows = append(rows, []interface{}{i + 1, bin.StockLength, j + 1, piece})
		}
	}
	return writeRows(f, "Cut List", rows)
}
