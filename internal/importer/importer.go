// Package importer reads batch job lists from CSV and Excel files, one job
// per row. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition. Rows only carry the
// per-job stock data; tooling comes from the config defaults when the jobs
// are resolved.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/job"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []job.File
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name        int
	XSize       int
	YSize       int
	ZSize       int
	FinishedZ   int
	StockOffset int
	OnlyFinish  int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase).
var headerAliases = map[string][]string{
	"name":         {"name", "program", "program name", "job", "job name", "label"},
	"x_size":       {"x_size", "x size", "x", "stock x", "width"},
	"y_size":       {"y_size", "y size", "y", "stock y", "depth"},
	"z_size":       {"z_size", "z size", "z", "stock z", "height"},
	"finished_z":   {"finished_z", "finished z", "finished_z_height", "finished z height", "target z"},
	"stock_offset": {"stock_offset", "stock offset", "offset", "margin"},
	"only_finish":  {"only_finish", "only finish", "finish only", "skip roughing"},
}

// ImportFile dispatches on the file extension: .csv goes through the CSV
// path, .xlsx/.xls through excelize.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports jobs from a CSV file. It automatically detects the
// delimiter (comma, semicolon, tab, or pipe) and maps columns by header
// names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports jobs from a CSV reader with a known
// delimiter. Useful for tests.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports jobs from an Excel file. Reads the first sheet and
// auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// DetectCSVDelimiter determines the most likely CSV delimiter: the one
// producing the most consistent multi-column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns maps the header row to column roles. When the first row
// contains no recognizable header it falls back to positional mapping and
// reports hasHeader=false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, XSize: -1, YSize: -1, ZSize: -1,
		FinishedZ: -1, StockOffset: -1, OnlyFinish: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "name":
			if mapping.Name == -1 {
				mapping.Name = i
			}
		case "x_size":
			if mapping.XSize == -1 {
				mapping.XSize = i
			}
		case "y_size":
			if mapping.YSize == -1 {
				mapping.YSize = i
			}
		case "z_size":
			if mapping.ZSize == -1 {
				mapping.ZSize = i
			}
		case "finished_z":
			if mapping.FinishedZ == -1 {
				mapping.FinishedZ = i
			}
		case "stock_offset":
			if mapping.StockOffset == -1 {
				mapping.StockOffset = i
			}
		case "only_finish":
			if mapping.OnlyFinish == -1 {
				mapping.OnlyFinish = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: name, x, y, z, finished z, offset, only finish.
		return ColumnMapping{
			Name: 0, XSize: 1, YSize: 2, ZSize: 3,
			FinishedZ: 4, StockOffset: 5, OnlyFinish: 6,
		}, false
	}
	return mapping, true
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.XSize == -1 {
			missing = append(missing, "X size")
		}
		if mapping.YSize == -1 {
			missing = append(missing, "Y size")
		}
		if mapping.ZSize == -1 {
			missing = append(missing, "Z size")
		}
		if mapping.FinishedZ == -1 {
			missing = append(missing, "Finished Z")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		jf, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Jobs = append(result.Jobs, jf)
	}

	if len(result.Jobs) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No jobs found in file")
	}
	return result
}

// parseRow extracts one job from a row using the given column mapping.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, jobCount int) (job.File, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("JOB_%d", jobCount+1)
	}

	stock := model.Stock{}
	fields := []struct {
		label string
		idx   int
		dst   *float64
	}{
		{"X size", mapping.XSize, &stock.XSize},
		{"Y size", mapping.YSize, &stock.YSize},
		{"Z size", mapping.ZSize, &stock.ZSize},
		{"Finished Z", mapping.FinishedZ, &stock.FinishedZ},
	}
	for _, f := range fields {
		cell := getCell(row, f.idx)
		if cell == "" {
			return job.File{}, fmt.Sprintf("%s: Missing %s value", rowLabel, f.label), ""
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return job.File{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.label, cell), ""
		}
		*f.dst = v
	}

	var warning string
	if cell := getCell(row, mapping.StockOffset); cell != "" {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid stock offset '%s', using 0", rowLabel, cell)
		} else {
			stock.StockOffset = v
		}
	}

	onlyFinish := false
	if cell := getCell(row, mapping.OnlyFinish); cell != "" {
		v, ok := parseBool(cell)
		if !ok {
			warning = fmt.Sprintf("%s: Unknown only-finish value '%s', defaulting to false", rowLabel, cell)
		} else {
			onlyFinish = v
		}
	}

	return job.File{
		Name:       name,
		Stock:      &stock,
		OnlyFinish: onlyFinish,
	}, "", warning
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n", "", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
