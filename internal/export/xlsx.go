package export

import (
	"fmt"

	"github.com/piwi3910/rectpack/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
)

var placementHeaders = []string{"Bin", "Item ID", "Label", "Width", "Height", "X", "Y", "Rotated"}

// ExportExcel writes a workbook with a Summary sheet (one row per bin plus
// totals) and a Placements sheet (one row per placed item).
func ExportExcel(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(placementsSheet); err != nil {
		return fmt.Errorf("creating placements sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Bin", "Width", "Height", "Items", "Used Area", "Efficiency %", "Touching %"},
	}
	for _, bin := range result.Bins {
		summary = append(summary, []interface{}{
			bin.Index + 1, bin.Width, bin.Height, len(bin.Placements), bin.UsedArea(),
			round1(bin.Efficiency()), round1(bin.TouchingRatio * 100),
		})
	}
	summary = append(summary,
		[]interface{}{},
		[]interface{}{"Bins Used", result.NumberOfBins()},
		[]interface{}{"Lower Bound", result.LowerBound},
		[]interface{}{"Items", result.ItemCount()},
		[]interface{}{"Overall Efficiency %", round1(result.TotalEfficiency())},
		[]interface{}{"Heuristic", string(result.Settings.Heuristic)},
		[]interface{}{"Strategy", string(result.Settings.Strategy)},
		[]interface{}{"Rotation", result.Settings.AllowRotation},
	)
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	rows := [][]interface{}{toRow(placementHeaders)}
	for _, bin := range result.Bins {
		for _, p := range bin.Placements {
			rows = append(rows, []interface{}{
				bin.Index + 1, p.Item.ID, p.Item.Label, p.Width, p.Height, p.X, p.Y, p.Rotated,
			})
		}
	}
	if err := writeRows(f, placementsSheet, rows); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell reference: %w", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, ref, err)
			}
		}
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
