package excel

// ExcelConfig holds configuration for an Excel or CSV reference file
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet to read; empty selects the first sheet of the workbook
	Sheet string `json:"sheet"`
}

