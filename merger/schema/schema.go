// Package schema locates columns in loosely structured tables by semantic
// role. Billing exports rarely agree on column names ("Claim ID",
// "claim_id", "ClaimId#"), so resolution is a substring heuristic over a
// visible role table rather than a fixed schema.
package schema

import "strings"

// Role is a semantic column meaning independent of the literal column
// name in a given input file.
type Role string

const (
	RoleClaimID      Role = "claim_id"
	RoleChargeAmount Role = "charge_amount"
	RolePatientID    Role = "patient_id"
	RoleServiceDate  Role = "service_date"
	RoleCPTCode      Role = "cpt_code"
	RoleNPI          Role = "npi"
)

// Resolver maps each role to the token set a column name must contain.
// The table is data, not code, so tests and callers can see exactly what
// the matching policy is.
type Resolver map[Role][]string

// Default is the resolver used by the consolidation pipeline.
var Default = Resolver{
	RoleClaimID:      {"claim", "id"},
	RoleChargeAmount: {"charge", "amount"},
	RolePatientID:    {"patient", "id"},
	RoleServiceDate:  {"date", "service"},
	RoleCPTCode:      {"cpt", "code"},
	RoleNPI:          {"npi"},
}

// Resolve returns the first column, in original column order, whose name
// contains every token of the role as a case-insensitive substring. ok is
// false when no column matches; the caller decides whether that is fatal.
func (r Resolver) Resolve(columns []string, role Role) (string, bool) {
	tokens := r[role]
	if len(tokens) == 0 {
		return "", false
	}
	for _, col := range columns {
		if matches(strings.ToLower(strings.TrimSpace(col)), tokens) {
			return col, true
		}
	}
	return "", false
}

func matches(column string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(column, token) {
			return false
		}
	}
	return true
}
