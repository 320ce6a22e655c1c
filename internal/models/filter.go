package models

import "time"

// FilterState narrows the trade set the analytics run over. Zero-length
// slices mean "no restriction" for that dimension.
type FilterState struct {
	From        time.Time
	To          time.Time
	Instruments []Instrument
	Symbols     []string
	Sides       []Side
}

// Match reports whether a trade passes the filter. The date range applies to
// the open timestamp.
func (f FilterState) Match(t Trade) bool {
	if !f.From.IsZero() && t.OpenTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.OpenTime.After(f.To) {
		return false
	}
	if len(f.Instruments) > 0 && !containsInstrument(f.Instruments, t.Instrument) {
		return false
	}
	if len(f.Symbols) > 0 && !containsString(f.Symbols, t.Symbol) {
		return false
	}
	if len(f.Sides) > 0 && !containsSide(f.Sides, t.Side) {
		return false
	}
	return true
}

func containsInstrument(s []Instrument, v Instrument) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsSide(s []Side, v Side) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
