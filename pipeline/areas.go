// backend/pipeline/areas.go
package pipeline

import (
	"fmt"
	"log"
	"sort"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/madruiz/pm9data/backend/utils"
	"github.com/xuri/excelize/v2"
)

// LoadAreaLookup reads the legacy-area reference workbook into a code ->
// label map. The first sheet must carry COD_AREA and AREA header columns.
// Codes are cleaned the same way the loader cleans them so that lookups
// match; labels must belong to the current classification scheme, a row
// with any other label is skipped with a warning rather than poisoning the
// remap. When a code appears twice the first row wins.
func LoadAreaLookup(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open area lookup %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("area lookup %s has no sheets", path)
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read area lookup %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("area lookup %s is empty", path)
	}

	codeIdx, labelIdx := -1, -1
	for i := range rows[0] {
		switch cellString(rows[0], i) {
		case "COD_AREA":
			if codeIdx < 0 {
				codeIdx = i
			}
		case "AREA":
			if labelIdx < 0 {
				labelIdx = i
			}
		}
	}
	if codeIdx < 0 || labelIdx < 0 {
		return nil, fmt.Errorf("area lookup %s is missing COD_AREA/AREA columns", path)
	}

	valid := make(map[string]bool, len(models.AreaLabels()))
	for _, l := range models.AreaLabels() {
		valid[l] = true
	}

	lookup := make(map[string]string)
	for _, row := range rows[1:] {
		code := utils.CleanCode(cellString(row, codeIdx))
		label := utils.NormalizeWhitespace(cellString(row, labelIdx))
		if code == "" {
			continue
		}
		if !valid[label] {
			log.Printf("Areas: lookup row for code %q has unknown label %q, skipping\n", code, label)
			continue
		}
		if _, dup := lookup[code]; dup {
			log.Printf("Areas: duplicate lookup entry for code %q, keeping the first\n", code)
			continue
		}
		lookup[code] = label
	}

	log.Printf("Areas: loaded %d area mappings from %s\n", len(lookup), path)
	return lookup, nil
}

// AreaStats summarizes the remap. Null codes and unmapped codes are kept
// apart: the first is an expected administrative gap, the second means the
// lookup table has a hole someone should close.
type AreaStats struct {
	NullCodes     int
	UnmappedRows  int
	UnmappedCodes []string
}

// ApplyAreas fills Project.Area from the legacy-code lookup, in place.
// Rows without a code and rows whose code has no lookup entry both end up
// in the Desconocido bucket, counted separately.
func ApplyAreas(projects []models.Project, lookup map[string]string) AreaStats {
	var stats AreaStats
	unmapped := make(map[string]struct{})

	for i := range projects {
		p := &projects[i]
		if p.CodArea == "" {
			p.Area = models.AreaDesconocida
			stats.NullCodes++
			continue
		}
		label, ok := lookup[p.CodArea]
		if !ok {
			p.Area = models.AreaDesconocida
			stats.UnmappedRows++
			unmapped[p.CodArea] = struct{}{}
			continue
		}
		p.Area = label
	}

	for code := range unmapped {
		stats.UnmappedCodes = append(stats.UnmappedCodes, code)
	}
	sort.Strings(stats.UnmappedCodes)
	if stats.UnmappedRows > 0 {
		log.Printf("Areas: %d rows carry area codes missing from the lookup: %v\n",
			stats.UnmappedRows, stats.UnmappedCodes)
	}
	return stats
}
