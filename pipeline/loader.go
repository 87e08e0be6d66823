// backend/pipeline/loader.go
package pipeline

import (
	"fmt"
	"log"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/madruiz/pm9data/backend/utils"
	"github.com/xuri/excelize/v2"
)

// LoadStats summarizes what the loader saw in the source workbook.
// CellErrors counts unparseable cells per raw column name; those cells end
// up as nil in the row rather than failing the run.
type LoadStats struct {
	RowsRead   int
	CellErrors map[string]int
}

// LoadProjects reads the raw grant workbook into Project rows. Cells are
// read in raw mode so date cells arrive as serial numbers and code cells
// keep their leading zeros instead of whatever display format the workbook
// happens to carry. sheetName may be empty to mean the first sheet.
//
// A missing required column is a hard error; a cell that cannot be coerced
// is not, it is counted in LoadStats and the field stays nil.
func LoadProjects(path string, sheetName string) ([]models.Project, *LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, nil, fmt.Errorf("source workbook %s has no sheets", path)
		}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheetName, path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q of %s is empty", sheetName, path)
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, nil, err
	}

	stats := &LoadStats{CellErrors: make(map[string]int)}
	projects := make([]models.Project, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if rowIsEmpty(row) {
			continue
		}
		stats.RowsRead++

		cell := func(name string) string { return cellString(row, cols[name]) }

		p := models.Project{
			Referencia:     utils.CleanCode(cell("REFERENCIA")),
			RefUE:          utils.CleanCode(cell("REF_UE")),
			Acronimo:       cell("ACRONIMO"),
			Titulo:         cell("TITULO"),
			Situacion:      cell("SIT"),
			Programa:       cell("PROGRAMA"),
			AccionClave:    cell("ACCION"),
			Convocatoria:   cell("CONV"),
			CodArea:        utils.CleanCode(cell("COD_AREA")),
			Centro:         utils.CleanCode(cell("ORGANICA")),
			NombreIP:       cell("IP"),
			Resumen:        cell("RESUMEN"),
			Keywords:       cell("KEYWORDS"),
			NombreCentroIP: cell("NOMBRE_CENTRO"),
		}

		if p.ImporteConcedido, err = parseDecimalCell(cell("IMPORTE")); err != nil {
			stats.CellErrors["IMPORTE"]++
		}
		if p.DuracionMeses, err = parseIntCell(cell("MESES")); err != nil {
			stats.CellErrors["MESES"]++
		}
		if p.TotalParticipantes, err = parseIntCell(cell("PART_TOTAL")); err != nil {
			stats.CellErrors["PART_TOTAL"]++
		}
		if p.ParticipantesEspana, err = parseIntCell(cell("PART_ES")); err != nil {
			stats.CellErrors["PART_ES"]++
		}
		if p.ParticipantesCSIC, err = parseIntCell(cell("PART_CSIC")); err != nil {
			stats.CellErrors["PART_CSIC"]++
		}
		if p.FechaInicio, err = parseDateCell(cell("F_INICIO")); err != nil {
			stats.CellErrors["F_INICIO"]++
		}
		if p.FechaFin, err = parseDateCell(cell("F_FIN")); err != nil {
			stats.CellErrors["F_FIN"]++
		}

		projects = append(projects, p)
	}

	log.Printf("Loader: parsed %d rows from %s (sheet %q)\n", len(projects), path, sheetName)
	return projects, stats, nil
}

func rowIsEmpty(row []string) bool {
	for i := range row {
		if cellString(row, i) != "" {
			return false
		}
	}
	return true
}
