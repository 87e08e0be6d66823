// backend/models/api_models.go
package models

import "github.com/shopspring/decimal"

// ProjectQuery carries the parsed filter parameters for the /api/projects
// and /api/summary endpoints. Zero values mean "not filtered".
type ProjectQuery struct {
	Situacion string
	Programas []string
	Acciones  []string
	Areas     []string
	Centros   []string
	AnioDesde string
	AnioHasta string

	ImporteMin *decimal.Decimal
	ImporteMax *decimal.Decimal

	// Buscar is matched case-insensitively against title, acronym,
	// abstract, keywords and the normalized center name.
	Buscar string
}

// ProjectsResponse wraps a filtered project listing.
type ProjectsResponse struct {
	Total     int       `json:"total"`
	Proyectos []Project `json:"proyectos"`
}

// Aggregate is one row of a grouped breakdown: how many projects fall
// under Valor and how much awarded budget they add up to.
type Aggregate struct {
	Valor     string          `json:"valor"`
	Proyectos int             `json:"proyectos"`
	Importe   decimal.Decimal `json:"importe"`
}

// Summary holds the headline numbers and breakdowns for the dashboard,
// computed over the rows that match a ProjectQuery.
type Summary struct {
	TotalProyectos    int              `json:"total_proyectos"`
	ImporteTotal      decimal.Decimal  `json:"importe_total"`
	ImporteMedio      *decimal.Decimal `json:"importe_medio,omitempty"`
	DuracionMedia     *float64         `json:"duracion_media_meses,omitempty"`
	ParticipantesCSIC int              `json:"participantes_csic"`

	PorSituacion []Aggregate `json:"por_situacion"`
	PorPrograma  []Aggregate `json:"por_programa"`
	PorAccion    []Aggregate `json:"por_accion"`
	PorArea      []Aggregate `json:"por_area"`
	PorAnio      []Aggregate `json:"por_anio"`
	TopCentros   []Aggregate `json:"top_centros"`
}

// Facets lists the distinct values available for each filter control,
// computed over the full dataset (not the filtered subset).
type Facets struct {
	Situaciones []string `json:"situaciones"`
	Programas   []string `json:"programas"`
	Acciones    []string `json:"acciones"`
	Areas       []string `json:"areas"`
	Centros     []string `json:"centros"`
	Anios       []string `json:"anios"`

	ImporteMin *decimal.Decimal `json:"importe_min,omitempty"`
	ImporteMax *decimal.Decimal `json:"importe_max,omitempty"`
}
