package models

import (
	"strconv"
	"strings"
)

type scalarKind uint8

const (
	kindMissing scalarKind = iota
	kindString
	kindNumber
)

// Scalar is a loosely typed cell value from a source table or reference
// record. Values are either a string, a number, or missing; consumers must
// handle the missing case explicitly rather than relying on zero values.
type Scalar struct {
	kind scalarKind
	str  string
	num  float64
}

// None is the missing value.
var None = Scalar{}

func String(s string) Scalar {
	return Scalar{kind: kindString, str: s}
}

func Number(f float64) Scalar {
	return Scalar{kind: kindNumber, num: f}
}

func (s Scalar) IsMissing() bool {
	return s.kind == kindMissing
}

// Value renders the scalar for display. Numbers render without a forced
// decimal point, missing values render empty.
func (s Scalar) Value() string {
	switch s.kind {
	case kindString:
		return s.str
	case kindNumber:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Number returns the numeric value when the scalar is a number.
func (s Scalar) Number() (float64, bool) {
	if s.kind != kindNumber {
		return 0, false
	}
	return s.num, true
}

// RawTable is an ordered set of rows read from one source table. Column
// order follows the source file and is preserved for schema resolution.
type RawTable struct {
	Columns []string
	Rows    []map[string]Scalar
}

// TrimColumns strips edge whitespace from every column name, remapping row
// keys to the trimmed names.
func (t *RawTable) TrimColumns() {
	if t == nil {
		return
	}
	trimmed := make(map[string]string, len(t.Columns))
	for i, col := range t.Columns {
		clean := strings.TrimSpace(col)
		trimmed[col] = clean
		t.Columns[i] = clean
	}
	for i, row := range t.Rows {
		next := make(map[string]Scalar, len(row))
		for col, v := range row {
			next[trimmed[col]] = v
		}
		t.Rows[i] = next
	}
}

func (t *RawTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ConsolidatedClaim is the single canonical output row for all line-items
// sharing one claim id. Every field except ClaimID may be empty when its
// enrichment degraded.
type ConsolidatedClaim struct {
	ClaimID               string `json:"Claim ID"`
	PatientName           string `json:"Patient Name"`
	DateOfBirth           string `json:"Date of Birth"`
	Gender                string `json:"Gender"`
	Age                   string `json:"Age"`
	TotalChargeAmount     string `json:"Total Charge Amount"`
	StartingServiceDate   string `json:"Starting Service Date"`
	ProcedureDescriptions string `json:"Procedure Descriptions"`
	RenderingProviderName string `json:"Rendering Provider Name"`
	ProviderSpecialty     string `json:"Provider Specialty"`
	FacilityState         string `json:"Facility State"`
	FacilityName          string `json:"Facility Name"`
}

// ProcedureCount is one entry in the top-procedures ranking.
type ProcedureCount struct {
	Procedure string `json:"procedure"`
	Count     int    `json:"count"`
}

// AnalyticsReport carries the descriptive statistics over one consolidated
// claim set. It is derived read-only and never persisted.
type AnalyticsReport struct {
	TotalClaims       int              `json:"total_claims"`
	TotalPatients     int              `json:"total_patients"`
	TotalAmount       string           `json:"total_amount"`
	DateRange         string           `json:"date_range"`
	ClaimsBySpecialty map[string]int   `json:"claims_by_specialty"`
	TopProcedures     []ProcedureCount `json:"top_procedures"`
	ClaimsByGender    map[string]int   `json:"claims_by_gender"`
	ClaimsByState     map[string]int   `json:"claims_by_state"`
}
