// backend/pipeline/schema.go
package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// rawColumns lists the source-workbook headers the loader needs. All of them
// must be present in the header row; their order in the sheet does not
// matter because cells are addressed through the resolved index.
var rawColumns = []string{
	"REFERENCIA",
	"REF_UE",
	"ACRONIMO",
	"TITULO",
	"SIT",
	"PROGRAMA",
	"ACCION",
	"CONV",
	"COD_AREA",
	"ORGANICA",
	"NOMBRE_CENTRO",
	"IP",
	"IMPORTE",
	"MESES",
	"PART_TOTAL",
	"PART_ES",
	"PART_CSIC",
	"F_INICIO",
	"F_FIN",
	"RESUMEN",
	"KEYWORDS",
}

// mapHeader resolves every required raw column to its index in the header
// row. Header cells are trimmed before matching; if the same header appears
// twice the first occurrence wins. The error lists every missing column at
// once so a malformed export gets diagnosed in a single pass.
func mapHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	cols := make(map[string]int, len(rawColumns))
	var missing []string
	for _, name := range rawColumns {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("source sheet is missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}
