package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRead_CSV(t *testing.T) {
	data := "\xEF\xBB\xBFEmp No.,Nama,Tanggal,Scan Masuk\n" +
		"1001,Budi,2026-01-05,08:30\n" +
		",,,\n" +
		"1002,Sari\n"

	sheet, err := Read(strings.NewReader(data), "absensi.csv")
	require.NoError(t, err)

	assert.Equal(t, "absensi", sheet.Name)
	assert.Equal(t, []string{"Emp No.", "Nama", "Tanggal", "Scan Masuk"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "08:30", sheet.Rows[0]["Scan Masuk"])
	assert.Equal(t, "Sari", sheet.Rows[1]["Nama"])
	assert.Equal(t, "", sheet.Rows[1]["Scan Masuk"])
}

func TestRead_CSVSemicolon(t *testing.T) {
	data := "Emp No.;Nama;Lembur\n1001;Budi;01:30\n"

	sheet, err := Read(strings.NewReader(data), "export.CSV")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "01:30", sheet.Rows[0]["Lembur"])
}

func TestRead_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]any{"Emp No.", "Nama", "Departemen", "", "Nama"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]any{"1001", "Budi", "Engineering"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A4", &[]any{"1002", "Sari", "Finance", "x", "Sari W."}))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	sheet, err := Read(&buf, "absensi.xlsx")
	require.NoError(t, err)

	assert.Equal(t, sheetName, sheet.Name)
	assert.Equal(t, []string{"Emp No.", "Nama", "Departemen", "Column 4", "Nama_1"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Engineering", sheet.Rows[0]["Departemen"])
	assert.Equal(t, "", sheet.Rows[0]["Nama_1"])
	assert.Equal(t, "Sari W.", sheet.Rows[1]["Nama_1"])
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("a,b"), "data.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Read(strings.NewReader("\n\n"), "empty.csv")
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Read(strings.NewReader("not a zip"), "broken.xlsx")
	assert.Error(t, err)
}
