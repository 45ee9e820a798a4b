package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	columns := []string{"Claim ID", "Patient_ID", "CPT Code", "Charge Amount ($)", "Date of Service", "Rendering NPI"}

	tests := []struct {
		role Role
		want string
	}{
		{RoleClaimID, "Claim ID"},
		{RolePatientID, "Patient_ID"},
		{RoleCPTCode, "CPT Code"},
		{RoleChargeAmount, "Charge Amount ($)"},
		{RoleServiceDate, "Date of Service"},
		{RoleNPI, "Rendering NPI"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, ok := Default.Resolve(columns, tt.role)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Multiple columns can satisfy a role; the first in original column order
// wins.
func TestResolveFirstMatchWins(t *testing.T) {
	columns := []string{"claim_id", "payer_claim_id"}
	got, ok := Default.Resolve(columns, RoleClaimID)
	assert.True(t, ok)
	assert.Equal(t, "claim_id", got)
}

func TestResolveNoMatch(t *testing.T) {
	columns := []string{"first_name", "last_name", "dob"}
	_, ok := Default.Resolve(columns, RoleClaimID)
	assert.False(t, ok)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	got, ok := Default.Resolve([]string{"  Claim ID  "}, RoleClaimID)
	assert.True(t, ok)
	assert.Equal(t, "  Claim ID  ", got)
}

func TestResolveUnknownRole(t *testing.T) {
	_, ok := Default.Resolve([]string{"claim_id"}, Role("unknown_role"))
	assert.False(t, ok)
}

func TestResolveCustomResolver(t *testing.T) {
	r := Resolver{RoleClaimID: {"encounter"}}
	got, ok := r.Resolve([]string{"Encounter Number"}, RoleClaimID)
	assert.True(t, ok)
	assert.Equal(t, "Encounter Number", got)
}
