// Package excel reads batches of test-result records from spreadsheet
// files, one record per row.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/domain/apa"
)

// Recognized header names. Matching is case-insensitive; unknown columns
// are ignored.
const (
	colMethod     = "method"
	colStatName   = "statistic_name"
	colStatValue  = "statistic_value"
	colDF         = "df"
	colPValue     = "p_value"
	colEstName    = "estimate_name"
	colEstValues  = "estimate_values" // semicolon-separated
	colCILower    = "ci_lower"
	colCIUpper    = "ci_upper"
	colCILevel    = "ci_level"
	colSampleSize = "n"
)

// ResultReader reads test-result rows from .xlsx or .csv files.
type ResultReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewResultReader creates a reader for the given file; the format is
// chosen from the file extension.
func NewResultReader(filePath string) *ResultReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &ResultReader{filePath: filePath, fileType: fileType}
}

// ReadItems reads all rows into render items. The first row must be a
// header naming the columns.
func (r *ResultReader) ReadItems() ([]app.RenderItem, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("input file %s has no data rows", r.filePath)
	}

	header := indexHeader(rows[0])
	items := make([]app.RenderItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		item, err := parseRow(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		item.Source = fmt.Sprintf("%s:%d", filepath.Base(r.filePath), i+2)
		items = append(items, item)
	}
	return items, nil
}

func (r *ResultReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func (r *ResultReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// indexHeader maps lowercased column names to their positions.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func parseRow(header map[string]int, row []string) (app.RenderItem, error) {
	cell := func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	statName := cell(colStatName)
	if statName == "" {
		return app.RenderItem{}, fmt.Errorf("missing %s", colStatName)
	}
	statValue, err := parseFloatCell(cell(colStatValue), colStatValue)
	if err != nil {
		return app.RenderItem{}, err
	}
	pValue, err := parseFloatCell(cell(colPValue), colPValue)
	if err != nil {
		return app.RenderItem{}, err
	}

	result := apa.TestResult{
		Method:    cell(colMethod),
		Statistic: apa.Statistic{Name: statName, Value: statValue},
		PValue:    pValue,
	}

	if s := cell(colDF); s != "" {
		df, err := parseFloatCell(s, colDF)
		if err != nil {
			return app.RenderItem{}, err
		}
		result.Parameters = append(result.Parameters, apa.Parameter{Name: "df", Value: df})
	}

	if name := cell(colEstName); name != "" {
		values, err := parseValueList(cell(colEstValues))
		if err != nil {
			return app.RenderItem{}, fmt.Errorf("%s: %w", colEstValues, err)
		}
		result.Estimate = &apa.Estimate{Name: name, Values: values}
	}

	if lo, hi := cell(colCILower), cell(colCIUpper); lo != "" && hi != "" {
		lower, err := parseFloatCell(lo, colCILower)
		if err != nil {
			return app.RenderItem{}, err
		}
		upper, err := parseFloatCell(hi, colCIUpper)
		if err != nil {
			return app.RenderItem{}, err
		}
		level := 0.95
		if s := cell(colCILevel); s != "" {
			if level, err = parseFloatCell(s, colCILevel); err != nil {
				return app.RenderItem{}, err
			}
		}
		result.ConfInt = &apa.ConfidenceInterval{Lower: lower, Upper: upper, Level: level}
	}

	if s := cell(colSampleSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return app.RenderItem{}, fmt.Errorf("%s: invalid integer %q", colSampleSize, s)
		}
		result.SampleSize = &n
	}

	return app.RenderItem{Result: result}, nil
}

func parseFloatCell(s, name string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, s)
	}
	return v, nil
}

// parseValueList splits a semicolon-separated list of numbers.
func parseValueList(s string) ([]float64, error) {
	if s == "" {
		return nil, fmt.Errorf("missing values")
	}
	parts := strings.Split(s, ";")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}
