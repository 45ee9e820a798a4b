// Package dates normalizes the date values found in billing files. Source
// files carry dates in several textual formats with no declaration of
// which one is in use, so parsing walks a fixed list of literal layouts
// and falls back to a permissive parser.
package dates

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/royalket/demo-file-merger/merger/models"
)

// Literal layouts tried in order. The order is load-bearing: a value like
// 05/01/2020 always parses month-first because that layout is tried before
// the day-first one. Do not reorder.
var layouts = []string{
	"01/02/2006",
	"01-02-2006",
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// Output format specs recognized by Format.
const (
	FormatISO = "YYYY-MM-DD"
	FormatUS  = "MM/DD/YYYY"
	FormatEU  = "DD/MM/YYYY"
)

// ParseString parses a date of unknown format. ok is false when no layout
// and no fallback interpretation fits; no error is ever returned so that
// callers can pass the original text through unchanged.
func ParseString(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Parse parses a scalar cell value as a date. Missing values never parse.
func Parse(v models.Scalar) (time.Time, bool) {
	if v.IsMissing() {
		return time.Time{}, false
	}
	return ParseString(v.Value())
}

// Format renders t under the given output spec. Unknown specs render as
// YYYY-MM-DD.
func Format(t time.Time, spec string) string {
	switch spec {
	case FormatUS:
		return t.Format("01/02/2006")
	case FormatEU:
		return t.Format("02/01/2006")
	default:
		return t.Format("2006-01-02")
	}
}

// FormatValue formats a scalar cell value under the given output spec.
// Missing or empty values render empty; values that fail to parse render
// as their original text rather than an error.
func FormatValue(v models.Scalar, spec string) string {
	if v.IsMissing() || v.Value() == "" {
		return ""
	}
	t, ok := Parse(v)
	if !ok {
		return v.Value()
	}
	return Format(t, spec)
}

// AgeInYears computes whole years between a date of birth and a service
// date using a fixed 365-day year. ok is false when either input is
// missing or unparseable, and also when the service date precedes the date
// of birth: an implausible input yields no age rather than a clamped one.
func AgeInYears(dob, serviceDate models.Scalar) (int, bool) {
	if dob.IsMissing() || dob.Value() == "" ||
		serviceDate.IsMissing() || serviceDate.Value() == "" {
		return 0, false
	}

	born, ok := Parse(dob)
	if !ok {
		return 0, false
	}
	service, ok := Parse(serviceDate)
	if !ok {
		return 0, false
	}

	days := int(service.Sub(born) / (24 * time.Hour))
	if days < 0 {
		return 0, false
	}
	return days / 365, true
}
