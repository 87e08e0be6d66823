// backend/pipeline/centers.go
package pipeline

import (
	"log"

	"github.com/madruiz/pm9data/backend/models"
)

// NormalizeCenters gives every center code a single display name. The raw
// workbook spells the same institute a handful of different ways, so all
// rows sharing a Centro code get the name that occurs most often among
// them. Ties break toward the spelling seen first in the file, and blank
// names do not vote, which keeps the result stable across runs.
//
// Rows without a Centro code keep their own (already whitespace-cleaned)
// name, there is nothing to group them by. Returns the number of rows whose
// name was rewritten.
func NormalizeCenters(projects []models.Project) int {
	type candidate struct {
		count    int
		firstRow int
	}
	votes := make(map[string]map[string]*candidate)

	for i := range projects {
		p := &projects[i]
		if p.Centro == "" || p.NombreCentroIP == "" {
			continue
		}
		names, ok := votes[p.Centro]
		if !ok {
			names = make(map[string]*candidate)
			votes[p.Centro] = names
		}
		c, ok := names[p.NombreCentroIP]
		if !ok {
			names[p.NombreCentroIP] = &candidate{count: 1, firstRow: i}
			continue
		}
		c.count++
	}

	winners := make(map[string]string, len(votes))
	for code, names := range votes {
		var best string
		var bestC *candidate
		for name, c := range names {
			if bestC == nil || c.count > bestC.count ||
				(c.count == bestC.count && c.firstRow < bestC.firstRow) {
				best, bestC = name, c
			}
		}
		winners[code] = best
	}

	changed := 0
	for i := range projects {
		p := &projects[i]
		if w, ok := winners[p.Centro]; ok && p.Centro != "" {
			p.CentroNormalizado = w
		} else {
			p.CentroNormalizado = p.NombreCentroIP
		}
		if p.CentroNormalizado != p.NombreCentroIP {
			changed++
		}
	}
	if changed > 0 {
		log.Printf("Centers: rewrote %d center names to their per-code majority spelling\n", changed)
	}
	return changed
}
