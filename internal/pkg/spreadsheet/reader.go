package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrEmptySheet        = errors.New("sheet has no header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sheet is the first worksheet of a file, keyed by header.
type Sheet struct {
	Name   string
	Header []string
	Rows   []map[string]string
}

// Read parses xlsx/xlsm (first sheet) or csv. Missing trailing cells become "" and blank rows are skipped.
func Read(r io.Reader, filename string) (Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	case ".csv":
		return readCSV(r, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	default:
		return Sheet{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func readWorkbook(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return build(sheets[0], rows)
}

func readCSV(r io.Reader, name string) (Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	return build(name, rows)
}

// detectDelimiter picks ';' when the header line has more semicolons than commas (Excel with id-ID locale).
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func build(name string, rows [][]string) (Sheet, error) {
	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return Sheet{}, ErrEmptySheet
	}

	sheet := Sheet{
		Name:   name,
		Header: headers(rows[headerIdx]),
		Rows:   make([]map[string]string, 0, len(rows)-headerIdx-1),
	}

	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		record := make(map[string]string, len(sheet.Header))
		for i, h := range sheet.Header {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			} else {
				record[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, record)
	}
	return sheet, nil
}

// headers trims names, fills blanks as "Column N" and suffixes duplicates with _1, _2...
func headers(row []string) []string {
	out := make([]string, len(row))
	seen := make(map[string]int, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "Column " + strconv.Itoa(i+1)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "_" + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
