// backend/services/dataset_service.go
package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/madruiz/pm9data/backend/config"
	"github.com/madruiz/pm9data/backend/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DatasetService serves the clean project table to the HTTP handlers. The
// whole table lives in memory (a few thousand rows at most) and gets
// swapped atomically on reload, so queries never observe a half-loaded
// portfolio and never block behind a pipeline run.
type DatasetService struct {
	mu       sync.RWMutex
	projects []models.Project
	byRef    map[string]int
	loadedAt time.Time

	path   string
	logger *zap.Logger
}

// NewDatasetService returns a service that reads the clean CSV at path.
// Call Reload to actually load it.
func NewDatasetService(path string, logger *zap.Logger) *DatasetService {
	return &DatasetService{path: path, logger: logger}
}

// Reload reads the clean CSV from disk and swaps it in. On error the
// previously loaded table, if any, stays in place.
func (s *DatasetService) Reload() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read clean dataset %s: %w", s.path, err)
	}

	var projects []models.Project
	if err := csvutil.Unmarshal(b, &projects); err != nil {
		return fmt.Errorf("failed to decode clean dataset %s: %w", s.path, err)
	}

	byRef := make(map[string]int, len(projects))
	for i := range projects {
		if _, dup := byRef[projects[i].Referencia]; !dup {
			byRef[projects[i].Referencia] = i
		}
	}

	s.mu.Lock()
	s.projects = projects
	s.byRef = byRef
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("dataset loaded",
		zap.String("path", s.path),
		zap.Int("projects", len(projects)))
	return nil
}

// Count returns the number of loaded projects.
func (s *DatasetService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

// LoadedAt returns when the current table was loaded; zero if never.
func (s *DatasetService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Get looks a project up by its Referencia.
func (s *DatasetService) Get(referencia string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byRef[referencia]
	if !ok {
		return models.Project{}, false
	}
	return s.projects[i], true
}

// Filter returns the projects matching every condition of the query.
func (s *DatasetService) Filter(q models.ProjectQuery) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Project, 0)
	for i := range s.projects {
		if matchesQuery(&s.projects[i], &q) {
			matched = append(matched, s.projects[i])
		}
	}
	return matched
}

func matchesQuery(p *models.Project, q *models.ProjectQuery) bool {
	if q.Situacion != "" && p.Situacion != q.Situacion {
		return false
	}
	if len(q.Programas) > 0 && !containsString(q.Programas, p.Programa) {
		return false
	}
	if len(q.Acciones) > 0 && !containsString(q.Acciones, p.AccionClave) {
		return false
	}
	if len(q.Areas) > 0 && !containsString(q.Areas, p.Area) {
		return false
	}
	if len(q.Centros) > 0 && !containsString(q.Centros, p.CentroNormalizado) {
		return false
	}

	if q.AnioDesde != "" || q.AnioHasta != "" {
		// Rows without a start year cannot satisfy a year filter.
		year, err := strconv.Atoi(p.AnioInicio)
		if err != nil {
			return false
		}
		if q.AnioDesde != "" {
			if d, err := strconv.Atoi(q.AnioDesde); err == nil && year < d {
				return false
			}
		}
		if q.AnioHasta != "" {
			if h, err := strconv.Atoi(q.AnioHasta); err == nil && year > h {
				return false
			}
		}
	}

	if q.ImporteMin != nil || q.ImporteMax != nil {
		if p.ImporteConcedido == nil {
			return false
		}
		if q.ImporteMin != nil && p.ImporteConcedido.Cmp(*q.ImporteMin) < 0 {
			return false
		}
		if q.ImporteMax != nil && p.ImporteConcedido.Cmp(*q.ImporteMax) > 0 {
			return false
		}
	}

	if q.Buscar != "" && !matchesSearch(p, q.Buscar) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match over the free-text
// fields, the same ones the dashboard search box covers.
func matchesSearch(p *models.Project, needle string) bool {
	needle = strings.ToLower(needle)
	for _, hay := range []string{p.Titulo, p.Acronimo, p.Resumen, p.Keywords, p.CentroNormalizado} {
		if hay != "" && strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Facets lists the distinct values of every filterable column plus the
// budget extremes, computed over the full table.
func (s *DatasetService) Facets() models.Facets {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var f models.Facets
	situaciones := make(map[string]struct{})
	programas := make(map[string]struct{})
	acciones := make(map[string]struct{})
	areas := make(map[string]struct{})
	centros := make(map[string]struct{})
	anios := make(map[string]struct{})

	for i := range s.projects {
		p := &s.projects[i]
		addNonEmpty(situaciones, p.Situacion)
		addNonEmpty(programas, p.Programa)
		addNonEmpty(acciones, p.AccionClave)
		addNonEmpty(areas, p.Area)
		addNonEmpty(centros, p.CentroNormalizado)
		addNonEmpty(anios, p.AnioInicio)

		if p.ImporteConcedido == nil {
			continue
		}
		if f.ImporteMin == nil || p.ImporteConcedido.Cmp(*f.ImporteMin) < 0 {
			v := *p.ImporteConcedido
			f.ImporteMin = &v
		}
		if f.ImporteMax == nil || p.ImporteConcedido.Cmp(*f.ImporteMax) > 0 {
			v := *p.ImporteConcedido
			f.ImporteMax = &v
		}
	}

	f.Situaciones = sortedKeys(situaciones)
	f.Programas = sortedKeys(programas)
	f.Acciones = sortedKeys(acciones)
	f.Areas = sortedKeys(areas)
	f.Centros = sortedKeys(centros)
	f.Anios = sortedKeys(anios)
	return f
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Summary computes the headline numbers and the grouped breakdowns over
// the rows matching the query. Averages skip rows missing the averaged
// value rather than treating them as zero.
func (s *DatasetService) Summary(q models.ProjectQuery) models.Summary {
	matched := s.Filter(q)

	sum := models.Summary{
		TotalProyectos: len(matched),
		ImporteTotal:   decimal.Zero,
	}

	conImporte := 0
	mesesTotal, conMeses := 0, 0
	for i := range matched {
		p := &matched[i]
		if p.ImporteConcedido != nil {
			sum.ImporteTotal = sum.ImporteTotal.Add(*p.ImporteConcedido)
			conImporte++
		}
		if p.DuracionMeses != nil {
			mesesTotal += *p.DuracionMeses
			conMeses++
		}
		if p.ParticipantesCSIC != nil {
			sum.ParticipantesCSIC += *p.ParticipantesCSIC
		}
	}
	if conImporte > 0 {
		medio := sum.ImporteTotal.DivRound(decimal.NewFromInt(int64(conImporte)), 2)
		sum.ImporteMedio = &medio
	}
	if conMeses > 0 {
		media := float64(mesesTotal) / float64(conMeses)
		sum.DuracionMedia = &media
	}

	sum.PorSituacion = aggregateBy(matched, func(p *models.Project) string { return p.Situacion })
	sum.PorPrograma = aggregateBy(matched, func(p *models.Project) string { return p.Programa })
	sum.PorAccion = aggregateBy(matched, func(p *models.Project) string { return p.AccionClave })
	sum.PorArea = aggregateBy(matched, func(p *models.Project) string { return p.Area })
	sum.PorAnio = aggregateBy(matched, func(p *models.Project) string { return p.AnioInicio })
	sum.TopCentros = topCentros(matched, config.AppConfig.Dashboard.TopCentros)
	return sum
}

// aggregateBy groups the rows by a key and counts projects and awarded
// budget per group. Rows with an empty key stay out of the breakdown.
// Groups come back sorted by key so responses are stable.
func aggregateBy(projects []models.Project, key func(*models.Project) string) []models.Aggregate {
	groups := make(map[string]*models.Aggregate)
	for i := range projects {
		k := key(&projects[i])
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &models.Aggregate{Valor: k, Importe: decimal.Zero}
			groups[k] = g
		}
		g.Proyectos++
		if imp := projects[i].ImporteConcedido; imp != nil {
			g.Importe = g.Importe.Add(*imp)
		}
	}

	out := make([]models.Aggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Valor < out[j].Valor })
	return out
}

// topCentros ranks centers by total awarded budget, ties broken by name.
func topCentros(projects []models.Project, n int) []models.Aggregate {
	agg := aggregateBy(projects, func(p *models.Project) string { return p.CentroNormalizado })
	sort.Slice(agg, func(i, j int) bool {
		if !agg[i].Importe.Equal(agg[j].Importe) {
			return agg[i].Importe.GreaterThan(agg[j].Importe)
		}
		return agg[i].Valor < agg[j].Valor
	})
	if n > 0 && len(agg) > n {
		agg = agg[:n]
	}
	return agg
}
