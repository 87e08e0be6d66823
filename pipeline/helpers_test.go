// backend/pipeline/helpers_test.go
package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an xlsx file with a header row followed by the
// given rows, on the default sheet.
func writeWorkbook(t *testing.T, path string, header []string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
}

// sourceRow builds a full raw source row in rawColumns order from a
// column -> value map; columns not in the map are left empty.
func sourceRow(values map[string]interface{}) []interface{} {
	row := make([]interface{}, len(rawColumns))
	for i, name := range rawColumns {
		if v, ok := values[name]; ok {
			row[i] = v
		}
	}
	return row
}

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func intPtr(n int) *int {
	return &n
}
