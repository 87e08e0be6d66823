// backend/models/project.go
package models

import (
	"github.com/shopspring/decimal"
)

// Scientific-area labels of the current classification scheme. Legacy area
// codes are translated into this closed set; anything that cannot be mapped
// falls back to AreaDesconocida.
const (
	AreaVida        = "Vida"
	AreaMateria     = "Materia"
	AreaSociedad    = "Sociedad"
	AreaDesconocida = "Desconocido"
)

// AreaLabels returns the valid target labels of the area lookup table,
// without the sentinel.
func AreaLabels() []string {
	return []string{AreaVida, AreaMateria, AreaSociedad}
}

// Bucket labels for the derived duration and budget ranges.
const (
	RangoCorto   = "Corto"
	RangoMedio   = "Medio"
	RangoLargo   = "Largo"
	RangoPequeno = "Pequeño"
	RangoGrande  = "Grande"
)

// Project is one grant project of the PM9 (Horizonte Europa) portfolio.
//
// Field order defines the column order of both exports; the csv tags are the
// exact column headers downstream consumers of the clean file see. Code-like
// fields (Referencia, RefUE, CodArea, Centro) are opaque strings: they may
// look numeric but carry leading zeros that a numeric type would destroy.
// Optional numerics and dates are pointers; nil means the source cell was
// empty or unparseable.
type Project struct {
	Referencia          string           `csv:"Referencia" json:"referencia"`
	RefUE               string           `csv:"Ref.UE" json:"ref_ue"`
	Acronimo            string           `csv:"Acrónimo" json:"acronimo"`
	Titulo              string           `csv:"Título" json:"titulo"`
	Situacion           string           `csv:"Situación" json:"situacion"`
	Programa            string           `csv:"Programa" json:"programa"`
	AccionClave         string           `csv:"Acción clave" json:"accion_clave"`
	Convocatoria        string           `csv:"Convocatoria" json:"convocatoria"`
	CodArea             string           `csv:"Cód.área" json:"cod_area"`
	Area                string           `csv:"Area" json:"area"`
	Centro              string           `csv:"Centro" json:"centro"`
	CentroNormalizado   string           `csv:"Nombre Centro IP Normalizado" json:"centro_normalizado"`
	NombreIP            string           `csv:"Nombre IP" json:"nombre_ip"`
	ImporteConcedido    *decimal.Decimal `csv:"Importe Concedido" json:"importe_concedido"`
	PresupuestoMensual  *decimal.Decimal `csv:"Presupuesto Mensual" json:"presupuesto_mensual"`
	RangoPresupuesto    string           `csv:"Rango Presupuesto" json:"rango_presupuesto"`
	DuracionMeses       *int             `csv:"Duración (meses)" json:"duracion_meses"`
	RangoDuracion       string           `csv:"Rango Duración" json:"rango_duracion"`
	TotalParticipantes  *int             `csv:"Total Participantes" json:"total_participantes"`
	ParticipantesEspana *int             `csv:"Participantes España" json:"participantes_espana"`
	ParticipantesCSIC   *int             `csv:"Participantes CSIC" json:"participantes_csic"`
	FechaInicio         *Fecha           `csv:"Fecha Inicio" json:"fecha_inicio"`
	FechaFin            *Fecha           `csv:"Fecha Fin" json:"fecha_fin"`
	AnioInicio          string           `csv:"Año Inicio" json:"anio_inicio"`
	AnioFin             string           `csv:"Año Fin" json:"anio_fin"`
	Resumen             string           `csv:"Resumen" json:"resumen"`
	Keywords            string           `csv:"Keywords" json:"keywords"`

	// NombreCentroIP is the raw center display name from the source file.
	// The center-name normalizer consumes it to build CentroNormalizado;
	// it is not part of the exported table.
	NombreCentroIP string `csv:"-" json:"-"`
}
