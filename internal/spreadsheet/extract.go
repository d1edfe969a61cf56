// Package spreadsheet turns uploaded xlsx or csv files into flat records keyed
// by the header row.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const DefaultMaxRows = 1000

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrTooManyRows       = errors.New("spreadsheet exceeds the maximum row count")
	ErrNoHeader          = errors.New("spreadsheet has no header row")
)

// Record is one data row, keyed by column name.
type Record map[string]string

type Sheet struct {
	Columns []string
	Rows    []Record
}

// Preview returns at most n leading rows.
func (s *Sheet) Preview(n int) []Record {
	if n > len(s.Rows) {
		n = len(s.Rows)
	}
	return s.Rows[:n]
}

// Supported reports whether the file extension can be extracted.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

func ExtractFile(path string, maxRows int) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Extract(f, filepath.Ext(path), maxRows)
}

// Extract reads the first worksheet (xlsx) or the whole file (csv). Rows past
// maxRows are rejected with ErrTooManyRows; maxRows <= 0 uses DefaultMaxRows.
func Extract(r io.Reader, ext string, maxRows int) (*Sheet, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	var rows [][]string
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "xlsx":
		rows, err = readXLSX(r)
	case "csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	return fromRows(rows, maxRows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV parse error: %w", err)
	}
	return rows, nil
}

func fromRows(rows [][]string, maxRows int) (*Sheet, error) {
	headerIdx := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoHeader
	}

	columns, positions := headerColumns(rows[headerIdx])
	if len(columns) == 0 {
		return nil, ErrNoHeader
	}

	sheet := &Sheet{Columns: columns, Rows: []Record{}}
	for _, row := range rows[headerIdx+1:] {
		if blankRow(row) {
			continue
		}
		if len(sheet.Rows) >= maxRows {
			return nil, fmt.Errorf("%w (max %d)", ErrTooManyRows, maxRows)
		}

		record := make(Record, len(columns))
		for i, column := range columns {
			pos := positions[i]
			if pos < len(row) {
				record[column] = row[pos]
			} else {
				record[column] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, record)
	}

	return sheet, nil
}

// headerColumns names each non-empty header cell, suffixing repeats with _1,
// _2 and so on. Columns under an empty header cell are dropped.
func headerColumns(header []string) ([]string, []int) {
	seen := map[string]int{}
	var columns []string
	var positions []int

	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		columns = append(columns, name)
		positions = append(positions, i)
	}
	return columns, positions
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
