package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"drafthours/domain/estimate"

	"github.com/xuri/excelize/v2"
)

// ReferenceHeaders are the column titles of the original reference workbook
var ReferenceHeaders = []string{
	"TIPO DI DOCUMENTO",
	"TOOL UTILIZZATO",
	"NUMERO DI EMISSIONI",
	"COMPLESSITA'",
	"ORE TOTALI",
}

// SampleRows returns a small reference table covering every tool, both
// document types and each P&ID complexity class for one and two revisions.
func SampleRows() []estimate.ReferenceRow {
	var rows []estimate.ReferenceRow

	pidBase := map[estimate.ComplexityClass]float64{
		estimate.ComplexityDraftingStandard: 6,
		estimate.ComplexityDraftingComplex:  9,
		estimate.ComplexityFromScratch:      20,
		estimate.ComplexityFromSemiFinished: 14,
		estimate.ComplexityAsBuilt:          10,
	}
	toolFactor := map[estimate.Tool]float64{
		estimate.ToolAutoCAD:      1.0,
		estimate.ToolMicrostation: 1.0,
		estimate.ToolSmartPlant:   1.5,
	}
	tools := []estimate.Tool{estimate.ToolAutoCAD, estimate.ToolMicrostation, estimate.ToolSmartPlant}
	classes := []estimate.ComplexityClass{
		estimate.ComplexityDraftingStandard,
		estimate.ComplexityDraftingComplex,
		estimate.ComplexityFromScratch,
		estimate.ComplexityFromSemiFinished,
		estimate.ComplexityAsBuilt,
	}

	for _, tool := range tools {
		for rev := 1; rev <= 2; rev++ {
			for _, class := range classes {
				rows = append(rows, estimate.ReferenceRow{
					DocumentType:    estimate.DocumentPID,
					Tool:            tool,
					RevisionCount:   rev,
					ComplexityClass: class,
					TotalHours:      pidBase[class] * toolFactor[tool] * (1 + 0.1*float64(rev-1)),
				})
			}
			rows = append(rows, estimate.ReferenceRow{
				DocumentType:    estimate.DocumentPFD,
				Tool:            tool,
				RevisionCount:   rev,
				ComplexityClass: estimate.ComplexityPFDStandard,
				TotalHours:      4 * toolFactor[tool] * (1 + 0.1*float64(rev-1)),
			})
		}
	}
	return rows
}

// SampleTable builds an estimate.Table from SampleRows.
func SampleTable() (*estimate.Table, error) {
	return estimate.NewTable(SampleRows())
}

func rowCells(row estimate.ReferenceRow) []interface{} {
	return []interface{}{
		string(row.DocumentType),
		string(row.Tool),
		row.RevisionCount,
		string(row.ComplexityClass),
		row.TotalHours,
	}
}

// WriteReferenceWorkbook writes rows to an xlsx file laid out like the
// original reference workbook: headers on row 1 of the first sheet.
func WriteReferenceWorkbook(path string, rows []estimate.ReferenceRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &ReferenceHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		cells := rowCells(row)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteReferenceCSV writes rows to a csv file with the reference headers.
func WriteReferenceCSV(path string, rows []estimate.ReferenceRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(ReferenceHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			string(row.DocumentType),
			string(row.Tool),
			strconv.Itoa(row.RevisionCount),
			string(row.ComplexityClass),
			strconv.FormatFloat(row.TotalHours, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
