package sheets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for r, cells := range rows {
		for c, v := range cells {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadRows(t *testing.T) {
	path := writeTestWorkbook(t, "Wholesale CANADA", [][]string{
		{"Company Name", "Category", "Phone"},
		{"Acme", "Tools", "555-0100"},
		{"Globex", "Hardware"},
	})

	rows, err := ReadRows(path, "CA")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0]["Company Name"])
	assert.Equal(t, "Tools", rows[0]["Category"])
	assert.Equal(t, "555-0100", rows[0]["Phone"])

	// Short rows simply lack the trailing keys.
	assert.Equal(t, "Globex", rows[1]["Company Name"])
	_, ok := rows[1]["Phone"]
	assert.False(t, ok)
}

func TestReadRowsMissingSheet(t *testing.T) {
	path := writeTestWorkbook(t, "Wholesale CANADA", [][]string{
		{"Company Name"},
	})

	_, err := ReadRows(path, "MX")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"name", "category", "Extra"}
	rows := []map[string]string{
		{"name": "Acme", "category": "Tools", "Extra": "x"},
		{"name": "Globex", "category": "Hardware"},
	}

	require.NoError(t, WriteWorkbook(path, "Wholesale", headers, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Wholesale"}, f.GetSheetList())

	got, err := f.GetRows("Wholesale")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, headers, got[0])
	assert.Equal(t, "Acme", got[1][0])
	assert.Equal(t, "Globex", got[2][0])
}
