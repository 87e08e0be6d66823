// backend/models/report.go
package models

import "time"

// RunReport collects the diagnostics of one pipeline run. None of these
// numbers are errors by themselves: dropped duplicates, unparseable cells and
// unknown-area rows are expected in administrative exports and are resolved
// by fixed policies, but the counts are worth surfacing.
//
// The unknown-area bucket is split in two because the situations differ:
// AreaNullCodes counts rows that simply have no legacy code (an expected
// administrative gap), while AreaUnmappedRows counts rows whose code exists
// but is missing from the lookup table (a lookup-coverage gap that someone
// should eventually close).
type RunReport struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	RowsLoaded        int            `json:"rows_loaded"`
	CellErrors        map[string]int `json:"cell_errors,omitempty"`
	NullKeyDropped    int            `json:"null_key_dropped"`
	DuplicatesDropped int            `json:"duplicates_dropped"`
	CentersNormalized int            `json:"centers_normalized"`
	AreaNullCodes     int            `json:"area_null_codes"`
	AreaUnmappedRows  int            `json:"area_unmapped_rows"`
	AreaUnmappedCodes []string       `json:"area_unmapped_codes,omitempty"`
	RowsExported      int            `json:"rows_exported"`

	CSVPath   string `json:"csv_path"`
	XLSXPath  string `json:"xlsx_path"`
	Published bool   `json:"published"`
}
