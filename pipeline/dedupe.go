// backend/pipeline/dedupe.go
package pipeline

import (
	"log"

	"github.com/madruiz/pm9data/backend/models"
)

// DropNullKeys removes rows with an empty Referencia. A grant row without
// its reference number cannot be keyed, joined or deduplicated, so it does
// not make it into the clean table. Returns the kept rows and the number
// dropped.
func DropNullKeys(projects []models.Project) ([]models.Project, int) {
	kept := projects[:0]
	for _, p := range projects {
		if p.Referencia == "" {
			continue
		}
		kept = append(kept, p)
	}
	dropped := len(projects) - len(kept)
	if dropped > 0 {
		log.Printf("Dedupe: dropped %d rows with no Referencia\n", dropped)
	}
	return kept, dropped
}

// Dedupe removes duplicated Referencia rows, keeping the first occurrence
// in file order. Returns the kept rows and the number dropped.
func Dedupe(projects []models.Project) ([]models.Project, int) {
	seen := make(map[string]struct{}, len(projects))
	kept := projects[:0]
	for _, p := range projects {
		if _, dup := seen[p.Referencia]; dup {
			continue
		}
		seen[p.Referencia] = struct{}{}
		kept = append(kept, p)
	}
	dropped := len(projects) - len(kept)
	if dropped > 0 {
		log.Printf("Dedupe: dropped %d duplicated Referencia rows\n", dropped)
	}
	return kept, dropped
}
