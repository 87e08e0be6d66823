// backend/pipeline/coerce.go
package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/madruiz/pm9data/backend/models"
	"github.com/shopspring/decimal"
)

// excelEpoch is day zero of the serial date system used by xlsx files.
// Serial 1 is 1899-12-31, serial 45000 is some day in 2023, and so on.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are the textual date formats seen in the administrative
// exports, tried in order. Day-first layouts come from manual edits.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// cellString returns the trimmed cell at index i, tolerating the ragged rows
// excelize produces when trailing cells of a row are empty.
func cellString(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseIntCell parses an integer cell. Empty cells mean "value absent" and
// yield (nil, nil). Spreadsheets routinely store integers as floats, so a
// trailing ".0" is accepted; a genuine fraction is an error.
func parseIntCell(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	n := int(f)
	return &n, nil
}

// parseDecimalCell parses a money cell. Empty cells yield (nil, nil). A
// decimal comma with no decimal point is accepted, since hand-edited cells
// sometimes carry the Spanish notation.
func parseDecimalCell(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		d, err = decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	}
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return &d, nil
}

// parseDateCell parses a date cell. Raw numeric values are Excel date
// serials (days since excelEpoch, possibly with a fractional time-of-day
// that is discarded); anything else is matched against dateLayouts.
// Empty cells yield (nil, nil).
func parseDateCell(s string) (*models.Fecha, error) {
	if s == "" {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 {
			return nil, fmt.Errorf("date serial out of range: %q", s)
		}
		f := models.NewFecha(excelEpoch.AddDate(0, 0, int(serial)))
		return &f, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f := models.NewFecha(t)
			return &f, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date: %q", s)
}
