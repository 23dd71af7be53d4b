// Package excel exports power evaluation tables to .xlsx workbooks, the
// exchange format most pharmacometric study teams expect for design reports.
package excel

import (
	"context"
	"fmt"

	"github.com/giulialestini/PopED/domain/power"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Power"

// ReportWriter implements ports.ReportWriter for Excel workbooks.
type ReportWriter struct{}

// NewReportWriter creates an xlsx report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WritePowerTable writes one sheet with a header row, one row per selected
// parameter, and a summary footer.
func (w *ReportWriter) WritePowerTable(ctx context.Context, eval *power.Evaluation, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Parameter", "Value", "RSE (%)", "Predicted power (%)", "Target power (%)", "Required RSE (%)", "Min N"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, row := range eval.Rows {
		values := []any{
			fmt.Sprintf("bpop[%d]", row.ParameterIndex),
			row.Value,
			row.RSE,
			row.PredictedPower,
			row.TargetPower,
			row.RequiredRSE,
		}
		if row.MinN != nil {
			values = append(values, *row.MinN)
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	// Summary footer two rows below the table.
	footerRow := len(eval.Rows) + 4
	powerSummary := eval.PowerSummary()
	rseSummary := eval.RSESummary()
	footer := [][]any{
		{"Summary", "Mean", "Median", "Min", "Max"},
		{"Predicted power (%)", powerSummary.Mean, powerSummary.Median, powerSummary.Min, powerSummary.Max},
		{"RSE over free parameters (%)", rseSummary.Mean, rseSummary.Median, rseSummary.Min, rseSummary.Max},
	}
	for r, line := range footer {
		for c, v := range line {
			cell, err := excelize.CoordinatesToCellName(c+1, footerRow+r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
