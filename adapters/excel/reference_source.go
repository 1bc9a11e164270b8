package excel

import (
	"context"
	"math"
	"strconv"
	"strings"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
)

// Reference columns and the header spellings accepted for each. The first
// spelling is the one used in the original workbook.
var referenceColumns = []struct {
	field   string
	aliases []string
}{
	{"document_type", []string{"TIPO DI DOCUMENTO", "document_type", "document type"}},
	{"tool", []string{"TOOL UTILIZZATO", "tool"}},
	{"revision_count", []string{"NUMERO DI EMISSIONI", "revision_count", "revisions"}},
	{"complexity_class", []string{"COMPLESSITA'", "COMPLESSITÀ", "complexity_class", "complexity"}},
	{"total_hours", []string{"ORE TOTALI", "total_hours", "hours"}},
}

// ReferenceSource reads the reference table from an xlsx or csv file
type ReferenceSource struct {
	config ExcelConfig
}

// NewReferenceSource creates a reference source for the configured file
func NewReferenceSource(config ExcelConfig) *ReferenceSource {
	return &ReferenceSource{config: config}
}

// Name returns the file path
func (s *ReferenceSource) Name() string {
	return s.config.FilePath
}

// LoadRows reads and strictly parses every data row
func (s *ReferenceSource) LoadRows(ctx context.Context) ([]estimate.ReferenceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := NewDataReader(s.config.FilePath).WithSheet(s.config.Sheet).ReadData()
	if err != nil {
		return nil, core.NewTableLoadError(s.Name(), 0, "", err.Error())
	}
	return ParseReferenceRows(s.Name(), data)
}

// ParseReferenceRows converts raw sheet data into reference rows. Missing
// columns, empty cells and non-numeric values are load errors.
func ParseReferenceRows(source string, data *ExcelData) ([]estimate.ReferenceRow, error) {
	columns, err := resolveColumns(source, data.Headers)
	if err != nil {
		return nil, err
	}

	rows := make([]estimate.ReferenceRow, 0, len(data.Rows))
	for i, raw := range data.Rows {
		rowNumber := i + 2
		if i < len(data.RowNumbers) {
			rowNumber = data.RowNumbers[i]
		}

		cell := func(field string) (string, error) {
			header := columns[field]
			value := raw[header]
			if value == "" {
				return "", core.NewTableLoadError(source, rowNumber, header, "empty cell")
			}
			return value, nil
		}

		docValue, err := cell("document_type")
		if err != nil {
			return nil, err
		}
		docType, err := estimate.ParseDocumentType(docValue)
		if err != nil {
			return nil, core.NewTableLoadError(source, rowNumber, columns["document_type"], err.Error())
		}

		toolValue, err := cell("tool")
		if err != nil {
			return nil, err
		}

		revValue, err := cell("revision_count")
		if err != nil {
			return nil, err
		}
		revisions, err := parseRevisionCount(revValue)
		if err != nil {
			return nil, core.NewTableLoadError(source, rowNumber, columns["revision_count"], err.Error())
		}

		classValue, err := cell("complexity_class")
		if err != nil {
			return nil, err
		}

		hoursValue, err := cell("total_hours")
		if err != nil {
			return nil, err
		}
		hours, err := strconv.ParseFloat(hoursValue, 64)
		if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
			return nil, core.NewTableLoadError(source, rowNumber, columns["total_hours"], "not a number: "+hoursValue)
		}
		if hours < 0 {
			return nil, core.NewTableLoadError(source, rowNumber, columns["total_hours"], "negative hours: "+hoursValue)
		}

		rows = append(rows, estimate.ReferenceRow{
			DocumentType:    docType,
			Tool:            estimate.Tool(toolValue),
			RevisionCount:   revisions,
			ComplexityClass: estimate.ComplexityClass(classValue),
			TotalHours:      hours,
		})
	}

	if len(rows) == 0 {
		return nil, core.NewTableLoadError(source, 0, "", "no data rows")
	}
	return rows, nil
}

// resolveColumns maps each reference field to the header present in the sheet
func resolveColumns(source string, headers []string) (map[string]string, error) {
	byName := make(map[string]string, len(headers))
	for _, h := range headers {
		byName[strings.ToUpper(h)] = h
	}

	columns := make(map[string]string, len(referenceColumns))
	for _, col := range referenceColumns {
		for _, alias := range col.aliases {
			if header, ok := byName[strings.ToUpper(alias)]; ok {
				columns[col.field] = header
				break
			}
		}
		if _, ok := columns[col.field]; !ok {
			return nil, core.NewTableLoadError(source, 0, col.aliases[0], "missing column")
		}
	}
	return columns, nil
}

// parseRevisionCount accepts whole numbers, including the "2.0" form some
// spreadsheets store
func parseRevisionCount(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 {
			return 0, strconv.ErrRange
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, &strconv.NumError{Func: "parseRevisionCount", Num: value, Err: strconv.ErrSyntax}
	}
	return int(f), nil
}
