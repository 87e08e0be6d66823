// backend/pipeline/export.go
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/madruiz/pm9data/backend/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// exportSheet is the sheet name of the xlsx export.
const exportSheet = "Proyectos"

// Export writes the clean table as CSV and as xlsx. Both writes are
// attempted even if the first fails, so one broken target does not hide
// the other file; the errors, if any, come back joined.
func Export(projects []models.Project, csvPath, xlsxPath string) error {
	return errors.Join(
		ExportCSV(projects, csvPath),
		ExportXLSX(projects, xlsxPath),
	)
}

// ExportCSV writes the clean table to path. Column order and headers come
// from the csv tags of models.Project, so re-running the pipeline over the
// same input produces a byte-identical file.
func ExportCSV(projects []models.Project, path string) error {
	b, err := csvutil.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode clean CSV: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write clean CSV %s: %w", path, err)
	}
	log.Printf("Export: wrote %d rows to %s\n", len(projects), path)
	return nil
}

// ExportXLSX writes the clean table to an xlsx workbook with a single
// sheet. Codes, dates, years and range labels go in as text so Excel
// cannot mangle them back into numbers; amounts, months and participant
// counts go in as numbers so the sheet remains usable for quick pivots.
// Missing values become empty cells.
func ExportXLSX(projects []models.Project, path string) error {
	headers, err := csvutil.Header(models.Project{}, "csv")
	if err != nil {
		return fmt.Errorf("failed to derive xlsx header: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name xlsx sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i := range projects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address xlsx row %d: %w", i+2, err)
		}
		vals := xlsxRow(&projects[i])
		if err := f.SetSheetRow(exportSheet, cell, &vals); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save xlsx %s: %w", path, err)
	}
	log.Printf("Export: wrote %d rows to %s\n", len(projects), path)
	return nil
}

// xlsxRow lays out one project in the export column order.
func xlsxRow(p *models.Project) []interface{} {
	return []interface{}{
		p.Referencia,
		p.RefUE,
		p.Acronimo,
		p.Titulo,
		p.Situacion,
		p.Programa,
		p.AccionClave,
		p.Convocatoria,
		p.CodArea,
		p.Area,
		p.Centro,
		p.CentroNormalizado,
		p.NombreIP,
		decimalCell(p.ImporteConcedido),
		decimalCell(p.PresupuestoMensual),
		p.RangoPresupuesto,
		intCell(p.DuracionMeses),
		p.RangoDuracion,
		intCell(p.TotalParticipantes),
		intCell(p.ParticipantesEspana),
		intCell(p.ParticipantesCSIC),
		dateCell(p.FechaInicio),
		dateCell(p.FechaFin),
		p.AnioInicio,
		p.AnioFin,
		p.Resumen,
		p.Keywords,
	}
}

func decimalCell(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

func intCell(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

func dateCell(f *models.Fecha) interface{} {
	if f == nil {
		return nil
	}
	return f.String()
}
