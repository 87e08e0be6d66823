// backend/pipeline/derive.go
package pipeline

import (
	"strconv"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/shopspring/decimal"
)

// Bucket thresholds. Durations are in months, budgets in euros; both upper
// bounds are inclusive.
var (
	duracionCortaMax = 12
	duracionMediaMax = 36

	presupuestoPequenoMax = decimal.NewFromInt(150_000)
	presupuestoMedioMax   = decimal.NewFromInt(500_000)
)

// DeriveFields computes the columns that do not exist in the source
// workbook: start and end years, the monthly budget, and the duration and
// budget range labels. Rows missing an input keep the zero value of the
// derived field (empty label, nil amount); the derivation never guesses.
func DeriveFields(projects []models.Project) {
	for i := range projects {
		p := &projects[i]

		p.AnioInicio = yearOf(p.FechaInicio)
		p.AnioFin = yearOf(p.FechaFin)
		p.PresupuestoMensual = monthlyBudget(p.ImporteConcedido, p.DuracionMeses)
		p.RangoDuracion = duracionRange(p.DuracionMeses)
		p.RangoPresupuesto = presupuestoRange(p.ImporteConcedido)
	}
}

func yearOf(f *models.Fecha) string {
	if f == nil {
		return ""
	}
	return strconv.Itoa(f.Year())
}

// monthlyBudget divides the awarded amount evenly over the project months,
// rounded to cents. Either input missing, or a zero duration, yields nil.
func monthlyBudget(importe *decimal.Decimal, meses *int) *decimal.Decimal {
	if importe == nil || meses == nil || *meses == 0 {
		return nil
	}
	monthly := importe.DivRound(decimal.NewFromInt(int64(*meses)), 2)
	return &monthly
}

func duracionRange(meses *int) string {
	switch {
	case meses == nil:
		return ""
	case *meses <= duracionCortaMax:
		return models.RangoCorto
	case *meses <= duracionMediaMax:
		return models.RangoMedio
	default:
		return models.RangoLargo
	}
}

func presupuestoRange(importe *decimal.Decimal) string {
	switch {
	case importe == nil:
		return ""
	case importe.Cmp(presupuestoPequenoMax) <= 0:
		return models.RangoPequeno
	case importe.Cmp(presupuestoMedioMax) <= 0:
		return models.RangoMedio
	default:
		return models.RangoGrande
	}
}
