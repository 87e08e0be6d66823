// backend/pipeline/textclean.go
package pipeline

import (
	"github.com/madruiz/pm9data/backend/models"
	"github.com/madruiz/pm9data/backend/utils"
)

// CleanText normalizes whitespace on every free-text and categorical column
// of the rows, in place. Code columns are left alone; they were already
// cleaned at load time and carry no interior whitespace worth collapsing.
func CleanText(projects []models.Project) {
	for i := range projects {
		p := &projects[i]
		p.Acronimo = utils.NormalizeWhitespace(p.Acronimo)
		p.Titulo = utils.NormalizeWhitespace(p.Titulo)
		p.Situacion = utils.NormalizeWhitespace(p.Situacion)
		p.Programa = utils.NormalizeWhitespace(p.Programa)
		p.AccionClave = utils.NormalizeWhitespace(p.AccionClave)
		p.Convocatoria = utils.NormalizeWhitespace(p.Convocatoria)
		p.NombreIP = utils.NormalizeWhitespace(p.NombreIP)
		p.Resumen = utils.NormalizeWhitespace(p.Resumen)
		p.Keywords = utils.NormalizeWhitespace(p.Keywords)
		p.NombreCentroIP = utils.NormalizeWhitespace(p.NombreCentroIP)
	}
}
