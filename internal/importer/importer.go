// Package importer reads fence layouts from the formats drawing tools
// export: JSON, CSV, Excel, and DXF. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fenceworks/fencecalc/internal/model"
)

// Defaults fills in segment attributes the source format cannot carry
// (DXF has no fence type; CSV files may omit the columns).
type Defaults struct {
	FenceType string
	Height    float64
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Segments []model.Segment
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	X1, Y1    int
	X2, Y2    int
	FenceType int
	Height    int
	Gate      int
	GateWidth int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"x1":         {"x1", "start x", "startx", "start_x", "sx"},
	"y1":         {"y1", "start y", "starty", "start_y", "sy"},
	"x2":         {"x2", "end x", "endx", "end_x", "ex"},
	"y2":         {"y2", "end y", "endy", "end_y", "ey"},
	"fence_type": {"fence_type", "type", "style", "fence", "fence type"},
	"height":     {"height", "h", "panel height", "ht"},
	"gate":       {"gate", "is_gate", "is gate", "opening"},
	"gate_width": {"gate_width", "gate width", "opening width", "gw"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column row shape wins.
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

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases. Returns the
// mapping and true if a header was detected, or the default positional
// mapping (x1, y1, x2, y2, type, height, gate, gate width) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{X1: -1, Y1: -1, X2: -1, Y2: -1, FenceType: -1, Height: -1, Gate: -1, GateWidth: -1}

	isHeader := false
	assign := func(role string, i int) {
		switch role {
		case "x1":
			if mapping.X1 == -1 {
				mapping.X1 = i
			}
		case "y1":
			if mapping.Y1 == -1 {
				mapping.Y1 = i
			}
		case "x2":
			if mapping.X2 == -1 {
				mapping.X2 = i
			}
		case "y2":
			if mapping.Y2 == -1 {
				mapping.Y2 = i
			}
		case "fence_type":
			if mapping.FenceType == -1 {
				mapping.FenceType = i
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
		case "gate":
			if mapping.Gate == -1 {
				mapping.Gate = i
			}
		case "gate_width":
			if mapping.GateWidth == -1 {
				mapping.GateWidth = i
			}
		}
	}
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
		return ColumnMapping{X1: 0, Y1: 1, X2: 2, Y2: 3, FenceType: 4, Height: 5, Gate: 6, GateWidth: 7}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseBool recognizes the truthy spellings drawing exports use for the
// gate flag.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "y", "yes", "true", "gate":
		return true, true
	case "", "0", "n", "no", "false", "-":
		return false, true
	default:
		return false, false
	}
}

// parseRow extracts a Segment from a row using the given column mapping.
// Returns the segment, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, defaults Defaults) (model.Segment, string, string) {
	coord := func(idx int, name string) (float64, string) {
		s := getCell(row, idx)
		if s == "" {
			return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
		}
		return v, ""
	}

	x1, errMsg := coord(mapping.X1, "x1")
	if errMsg != "" {
		return model.Segment{}, errMsg, ""
	}
	y1, errMsg := coord(mapping.Y1, "y1")
	if errMsg != "" {
		return model.Segment{}, errMsg, ""
	}
	x2, errMsg := coord(mapping.X2, "x2")
	if errMsg != "" {
		return model.Segment{}, errMsg, ""
	}
	y2, errMsg := coord(mapping.Y2, "y2")
	if errMsg != "" {
		return model.Segment{}, errMsg, ""
	}

	seg := model.Segment{
		Start:     model.Point{X: x1, Y: y1},
		End:       model.Point{X: x2, Y: y2},
		FenceType: defaults.FenceType,
		Height:    defaults.Height,
	}

	if ft := getCell(row, mapping.FenceType); ft != "" {
		seg.FenceType = strings.ToLower(ft)
	}

	var warning string
	if hs := getCell(row, mapping.Height); hs != "" {
		h, err := strconv.ParseFloat(hs, 64)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid height '%s', using default %g", rowLabel, hs, defaults.Height)
		} else {
			seg.Height = h
		}
	}

	if gs := getCell(row, mapping.Gate); gs != "" {
		gate, ok := parseBool(gs)
		if !ok {
			warning = fmt.Sprintf("%s: Unknown gate flag '%s', treating as fence", rowLabel, gs)
		}
		seg.IsGate = gate
	}

	if gw := getCell(row, mapping.GateWidth); gw != "" && seg.IsGate {
		w, err := strconv.ParseFloat(gw, 64)
		if err == nil && w > 0 {
			seg.GateWidth = w
		}
	}

	return seg, "", warning
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

// ImportCSV imports fence segments from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, defaults Defaults) ImportResult {
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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
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

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings, defaults)
}

// ImportCSVFromReader imports segments from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaults Defaults) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil, defaults)
}

// ImportExcel imports fence segments from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, defaults Defaults) ImportResult {
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

	return importFromRows(rows, "Row", nil, defaults)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, defaults Defaults) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		for _, c := range []struct {
			name string
			idx  int
		}{{"x1", mapping.X1}, {"y1", mapping.Y1}, {"x2", mapping.X2}, {"y2", mapping.Y2}} {
			if c.idx == -1 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		seg, errMsg, warning := parseRow(row, mapping, rowLabel, defaults)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Segments = append(result.Segments, seg)
	}

	return result
}
