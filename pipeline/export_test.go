// backend/pipeline/export_test.go
package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/madruiz/pm9data/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T) []models.Project {
	t.Helper()
	inicio := models.NewFecha(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return []models.Project{
		{
			Referencia:         "030102",
			RefUE:              "101000001",
			Acronimo:           "NEUROSIM",
			Titulo:             "Simulación neuronal",
			Situacion:          "Concedido",
			Programa:           "Horizonte Europa",
			AccionClave:        "ERC",
			Convocatoria:       "ERC-2021-STG",
			CodArea:            "01",
			Area:               models.AreaVida,
			Centro:             "010",
			CentroNormalizado:  "Centro de Química, Madrid",
			NombreIP:           "García López, María",
			ImporteConcedido:   dec(t, "600000"),
			PresupuestoMensual: dec(t, "25000"),
			RangoPresupuesto:   models.RangoGrande,
			DuracionMeses:      intPtr(24),
			RangoDuracion:      models.RangoMedio,
			TotalParticipantes: intPtr(5),
			ParticipantesCSIC:  intPtr(1),
			FechaInicio:        &inicio,
			AnioInicio:         "2024",
			Keywords:           "neurociencia, simulación",
		},
		{
			Referencia: "040000",
			Area:       models.AreaDesconocida,
		},
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, ExportCSV(exportFixture(t), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	header, _, _ := strings.Cut(string(b), "\n")
	assert.Equal(t,
		"Referencia,Ref.UE,Acrónimo,Título,Situación,Programa,Acción clave,"+
			"Convocatoria,Cód.área,Area,Centro,Nombre Centro IP Normalizado,"+
			"Nombre IP,Importe Concedido,Presupuesto Mensual,Rango Presupuesto,"+
			"Duración (meses),Rango Duración,Total Participantes,"+
			"Participantes España,Participantes CSIC,Fecha Inicio,Fecha Fin,"+
			"Año Inicio,Año Fin,Resumen,Keywords",
		header)

	var back []models.Project
	require.NoError(t, csvutil.Unmarshal(b, &back))
	require.Len(t, back, 2)

	p := back[0]
	assert.Equal(t, "030102", p.Referencia, "codes must survive the round trip verbatim")
	assert.Equal(t, "Centro de Química, Madrid", p.CentroNormalizado,
		"commas inside names must survive quoting")
	require.NotNil(t, p.ImporteConcedido)
	assert.True(t, p.ImporteConcedido.Equal(*dec(t, "600000")))
	require.NotNil(t, p.FechaInicio)
	assert.Equal(t, "2024-01-01", p.FechaInicio.String())

	empty := back[1]
	assert.Nil(t, empty.ImporteConcedido)
	assert.Nil(t, empty.DuracionMeses)
	assert.Nil(t, empty.FechaInicio)
	assert.Equal(t, "", empty.RangoDuracion)
}

func TestExportCSVIsByteIdentical(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "a.csv")
	second := filepath.Join(tmp, "b.csv")

	rows := exportFixture(t)
	require.NoError(t, ExportCSV(rows, first))
	require.NoError(t, ExportCSV(rows, second))

	b1, err := os.ReadFile(first)
	require.NoError(t, err)
	b2, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(b1, b2))
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.xlsx")
	require.NoError(t, ExportXLSX(exportFixture(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two data rows")

	assert.Equal(t, "Referencia", rows[0][0])
	assert.Equal(t, "030102", rows[1][0], "codes are text cells, zeros intact")
	assert.Equal(t, "600000", rows[1][13])
	assert.Equal(t, "2024-01-01", rows[1][21], "dates are text cells")
	assert.Equal(t, "040000", rows[2][0])
}

func TestExportAttemptsBothTargets(t *testing.T) {
	tmp := t.TempDir()
	badCSV := filepath.Join(tmp, "no-such-dir", "clean.csv")
	xlsx := filepath.Join(tmp, "clean.xlsx")

	err := Export(exportFixture(t), badCSV, xlsx)
	require.Error(t, err)

	_, statErr := os.Stat(xlsx)
	assert.NoError(t, statErr, "the xlsx must still be written when the CSV target fails")
}
