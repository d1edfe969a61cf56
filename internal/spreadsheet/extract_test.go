package spreadsheet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtract_CSV(t *testing.T) {
	input := "\xef\xbb\xbfName,Email,Score\nAna,ana@x.com,10\n,,\nBo,,7\nCy,cy@x.com\n"

	sheet, err := Extract(strings.NewReader(input), ".csv", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Email", "Score"}, sheet.Columns)
	require.Len(t, sheet.Rows, 3, "blank rows are skipped")
	assert.Equal(t, Record{"Name": "Ana", "Email": "ana@x.com", "Score": "10"}, sheet.Rows[0])
	assert.Equal(t, Record{"Name": "Bo", "Email": "", "Score": "7"}, sheet.Rows[1])
	assert.Equal(t, Record{"Name": "Cy", "Email": "cy@x.com", "Score": ""}, sheet.Rows[2], "short rows are padded")
}

func TestExtract_DuplicateAndEmptyHeaders(t *testing.T) {
	input := "Name,,Name,Email\nAna,ignored,Ann,ana@x.com\n"

	sheet, err := Extract(strings.NewReader(input), "csv", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Name_1", "Email"}, sheet.Columns)
	assert.Equal(t, Record{"Name": "Ana", "Name_1": "Ann", "Email": "ana@x.com"}, sheet.Rows[0])
}

func TestExtract_MaxRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("Name,Email\n")
	for i := range 4 {
		fmt.Fprintf(&b, "n%d,n%d@x.com\n", i, i)
	}

	_, err := Extract(strings.NewReader(b.String()), ".csv", 3)
	assert.ErrorIs(t, err, ErrTooManyRows)

	sheet, err := Extract(strings.NewReader(b.String()), ".csv", 4)
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 4)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := Extract(strings.NewReader("x"), ".xls", 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_EmptyFile(t *testing.T) {
	_, err := Extract(strings.NewReader("\n\n"), ".csv", 0)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestExtract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]any{"Name", "Email", "Hours"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]any{"Ana", "ana@x.com", 12}))
	require.NoError(t, f.SetSheetRow(sheetName, "A3", &[]any{"Bo", "", 3}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := Extract(bytes.NewReader(buf.Bytes()), ".XLSX", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Email", "Hours"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Ana", sheet.Rows[0]["Name"])
	assert.Equal(t, "12", sheet.Rows[0]["Hours"])
	assert.Equal(t, "", sheet.Rows[1]["Email"])
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Email\nAna,ana@x.com\n"), 0o644))

	sheet, err := ExtractFile(path, 10)
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 1)

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.csv"), 10)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSheet_Preview(t *testing.T) {
	sheet := &Sheet{Rows: []Record{{"a": "1"}, {"a": "2"}}}
	assert.Len(t, sheet.Preview(5), 2)
	assert.Len(t, sheet.Preview(1), 1)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("list.xlsx"))
	assert.True(t, Supported("LIST.CSV"))
	assert.False(t, Supported("list.xls"))
	assert.False(t, Supported("list"))
}
