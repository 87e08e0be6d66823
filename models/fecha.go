// backend/models/fecha.go
package models

import "time"

// FechaLayout is the wire format for dates in the exported table (ISO, no
// time-of-day).
const FechaLayout = "2006-01-02"

// Fecha is a calendar date. It wraps time.Time so that CSV, JSON and Excel
// exports all agree on the "2006-01-02" representation instead of RFC3339.
type Fecha struct {
	time.Time
}

// NewFecha builds a Fecha truncated to midnight UTC.
func NewFecha(t time.Time) Fecha {
	return Fecha{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (f Fecha) String() string {
	return f.Format(FechaLayout)
}

func (f Fecha) MarshalText() ([]byte, error) {
	return []byte(f.Format(FechaLayout)), nil
}

func (f *Fecha) UnmarshalText(text []byte) error {
	t, err := time.Parse(FechaLayout, string(text))
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format(FechaLayout) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return f.UnmarshalText([]byte(s))
}
