// backend/database/project_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/shopspring/decimal"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS pm9_projects (
	referencia           VARCHAR(32)  NOT NULL,
	ref_ue               VARCHAR(32)  NOT NULL DEFAULT '',
	acronimo             VARCHAR(64)  NOT NULL DEFAULT '',
	titulo               TEXT,
	situacion            VARCHAR(32)  NOT NULL DEFAULT '',
	programa             VARCHAR(128) NOT NULL DEFAULT '',
	accion_clave         VARCHAR(128) NOT NULL DEFAULT '',
	convocatoria         VARCHAR(128) NOT NULL DEFAULT '',
	cod_area             VARCHAR(16)  NOT NULL DEFAULT '',
	area                 VARCHAR(16)  NOT NULL DEFAULT '',
	centro               VARCHAR(16)  NOT NULL DEFAULT '',
	centro_normalizado   VARCHAR(255) NOT NULL DEFAULT '',
	nombre_ip            VARCHAR(255) NOT NULL DEFAULT '',
	importe_concedido    DECIMAL(14,2),
	presupuesto_mensual  DECIMAL(14,2),
	rango_presupuesto    VARCHAR(16)  NOT NULL DEFAULT '',
	duracion_meses       INT,
	rango_duracion       VARCHAR(16)  NOT NULL DEFAULT '',
	total_participantes  INT,
	participantes_espana INT,
	participantes_csic   INT,
	fecha_inicio         DATE,
	fecha_fin            DATE,
	anio_inicio          VARCHAR(8)   NOT NULL DEFAULT '',
	anio_fin             VARCHAR(8)   NOT NULL DEFAULT '',
	resumen              TEXT,
	keywords             TEXT,
	run_id               CHAR(36)     NOT NULL,
	updated_at           TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (referencia)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the published-projects table if it does not exist.
func EnsureSchema() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if _, err := DB.Exec(createProjectsTable); err != nil {
		return fmt.Errorf("failed to ensure pm9_projects table: %w", err)
	}
	return nil
}

// SaveProjects publishes the clean table with a clear-and-load: the whole
// table is replaced inside one transaction so readers never see a
// half-loaded portfolio. runID tags every row with the pipeline run that
// produced it.
func SaveProjects(projects []models.Project, runID string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(projects) == 0 {
		log.Println("No projects provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for projects: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pm9_projects"); err != nil {
		return fmt.Errorf("failed to clear pm9_projects: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pm9_projects (
			referencia, ref_ue, acronimo, titulo, situacion, programa,
			accion_clave, convocatoria, cod_area, area, centro,
			centro_normalizado, nombre_ip, importe_concedido,
			presupuesto_mensual, rango_presupuesto, duracion_meses,
			rango_duracion, total_participantes, participantes_espana,
			participantes_csic, fecha_inicio, fecha_fin, anio_inicio,
			anio_fin, resumen, keywords, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare project insert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		_, err := stmt.Exec(
			p.Referencia, p.RefUE, p.Acronimo, p.Titulo, p.Situacion, p.Programa,
			p.AccionClave, p.Convocatoria, p.CodArea, p.Area, p.Centro,
			p.CentroNormalizado, p.NombreIP, nullDecimal(p.ImporteConcedido),
			nullDecimal(p.PresupuestoMensual), p.RangoPresupuesto, nullInt(p.DuracionMeses),
			p.RangoDuracion, nullInt(p.TotalParticipantes), nullInt(p.ParticipantesEspana),
			nullInt(p.ParticipantesCSIC), nullFecha(p.FechaInicio), nullFecha(p.FechaFin),
			p.AnioInicio, p.AnioFin, p.Resumen, p.Keywords, runID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project '%s': %w", p.Referencia, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for projects: %w", err)
	}

	log.Printf("Successfully published %d projects (run %s)\n", len(projects), runID)
	return nil
}

// Amounts travel to the DECIMAL columns as strings, never through float64,
// so the cents survive exactly.
func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullFecha(f *models.Fecha) sql.NullTime {
	if f == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: f.Time, Valid: true}
}
