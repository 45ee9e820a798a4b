// Package pipeline consolidates raw billing line-items into one canonical
// row per claim. Grouping, joins against the reference tables, and every
// derived field live here; individual enrichment failures degrade to
// empty fields while only a missing records table or grouping key aborts
// the run.
package pipeline

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/royalket/demo-file-merger/log"
	"github.com/royalket/demo-file-merger/merger/constants"
	"github.com/royalket/demo-file-merger/merger/dates"
	"github.com/royalket/demo-file-merger/merger/models"
	"github.com/royalket/demo-file-merger/merger/reference"
	"github.com/royalket/demo-file-merger/merger/schema"
)

var (
	ErrMissingRecords  = errors.New(constants.MissingRecordsErr)
	ErrNoClaimIDColumn = errors.New(constants.NoClaimIDColumnErr)
)

// roleColumns holds the records-table columns resolved once, up front.
// Only the claim id is required; any other unmapped role leaves its
// output field empty.
type roleColumns struct {
	claimID     string
	charge      string
	patientID   string
	serviceDate string
	cptCode     string
	npi         string

	hasCharge      bool
	hasPatientID   bool
	hasServiceDate bool
	hasCPTCode     bool
	hasNPI         bool
}

// Consolidate groups the records table by claim id and emits one enriched
// claim per distinct id, in first-seen order of the id in the source
// table. The patients table is optional; the reference tables may be
// empty, in which case their enrichment fields stay empty.
func Consolidate(records, patients *models.RawTable, refs reference.Tables,
	dateFormat string) ([]models.ConsolidatedClaim, error) {

	if records.Empty() {
		return nil, ErrMissingRecords
	}

	records.TrimColumns()
	patients.TrimColumns()

	roles, err := resolveRoles(records.Columns)
	if err != nil {
		return nil, err
	}

	// Group rows by the claim-id cell value. Equality is value equality
	// under the source's typing; rows with a missing id never group.
	var order []models.Scalar
	groups := make(map[models.Scalar][]map[string]models.Scalar)
	for _, row := range records.Rows {
		key := row[roles.claimID]
		if key.IsMissing() {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	claims := make([]models.ConsolidatedClaim, 0, len(order))
	for _, key := range order {
		claim, err := consolidateGroup(key, groups[key], roles, patients, refs, dateFormat)
		if err != nil {
			log.Pipeline.Warnf("Error processing claim %s: %s", key.Value(), err.Error())
			continue
		}
		claims = append(claims, claim)
	}

	return claims, nil
}

func resolveRoles(columns []string) (roleColumns, error) {
	var roles roleColumns

	claimID, ok := schema.Default.Resolve(columns, schema.RoleClaimID)
	if !ok {
		return roles, ErrNoClaimIDColumn
	}
	roles.claimID = claimID

	roles.charge, roles.hasCharge = schema.Default.Resolve(columns, schema.RoleChargeAmount)
	roles.patientID, roles.hasPatientID = schema.Default.Resolve(columns, schema.RolePatientID)
	roles.serviceDate, roles.hasServiceDate = schema.Default.Resolve(columns, schema.RoleServiceDate)
	roles.cptCode, roles.hasCPTCode = schema.Default.Resolve(columns, schema.RoleCPTCode)
	roles.npi, roles.hasNPI = schema.Default.Resolve(columns, schema.RoleNPI)

	return roles, nil
}

// consolidateGroup builds the canonical row for one claim group. Any
// unexpected failure is converted to an error so the caller can drop the
// group without aborting the run; a group never produces a partial claim.
func consolidateGroup(key models.Scalar, rows []map[string]models.Scalar,
	roles roleColumns, patients *models.RawTable, refs reference.Tables,
	dateFormat string) (claim models.ConsolidatedClaim, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("unexpected failure: %v", r)
		}
	}()

	first := rows[0]

	var totalCharge float64
	if roles.hasCharge {
		for _, row := range rows {
			totalCharge += chargeValue(row[roles.charge])
		}
	}

	patientName, dob, gender := lookupPatient(first, roles, patients)

	serviceDate := minServiceDate(rows, roles)

	age := ""
	if years, ok := dates.AgeInYears(dob, serviceDate); ok {
		age = strconv.Itoa(years)
	}

	claim = models.ConsolidatedClaim{
		ClaimID:               key.Value(),
		PatientName:           patientName,
		DateOfBirth:           dates.FormatValue(dob, dateFormat),
		Gender:                gender,
		Age:                   age,
		TotalChargeAmount:     models.FormatAmount(totalCharge),
		StartingServiceDate:   dates.FormatValue(serviceDate, dateFormat),
		ProcedureDescriptions: procedureDescriptions(rows, roles, refs),
	}
	claim.RenderingProviderName, claim.ProviderSpecialty,
		claim.FacilityState, claim.FacilityName = lookupProvider(first, roles, refs)

	return claim, nil
}

func chargeValue(v models.Scalar) float64 {
	if v.IsMissing() {
		return 0
	}
	if n, ok := v.Number(); ok {
		return n
	}
	return models.ParseAmount(v.Value())
}

// lookupPatient joins the group's first-row patient id against the
// patients table. Every piece degrades independently: no patients table,
// no resolvable id column, or no matching row all leave the demographic
// fields empty.
func lookupPatient(first map[string]models.Scalar, roles roleColumns,
	patients *models.RawTable) (name string, dob models.Scalar, gender string) {

	dob = models.None
	if patients.Empty() || !roles.hasPatientID {
		return "", dob, ""
	}
	patientID := first[roles.patientID]
	if patientID.IsMissing() {
		return "", dob, ""
	}
	idCol, ok := schema.Default.Resolve(patients.Columns, schema.RolePatientID)
	if !ok {
		return "", dob, ""
	}

	for _, row := range patients.Rows {
		if row[idCol] != patientID {
			continue
		}
		// Demographic fields use the literal export column names
		name = strings.TrimSpace(row["first_name"].Value() + " " + row["last_name"].Value())
		dob = row["dob"]
		gender = row["gender"].Value()
		return name, dob, gender
	}
	return "", dob, ""
}

// minServiceDate picks the minimum of the group's non-missing raw service
// date values, compared before formatting.
func minServiceDate(rows []map[string]models.Scalar, roles roleColumns) models.Scalar {
	min := models.None
	if !roles.hasServiceDate {
		return min
	}
	for _, row := range rows {
		v := row[roles.serviceDate]
		if v.IsMissing() {
			continue
		}
		if min.IsMissing() || v.Value() < min.Value() {
			min = v
		}
	}
	return min
}

// procedureDescriptions resolves the group's distinct procedure codes, in
// first-occurrence order, to their descriptions. Codes with no match are
// silently skipped rather than rendered as empty placeholders.
func procedureDescriptions(rows []map[string]models.Scalar, roles roleColumns,
	refs reference.Tables) string {

	if !roles.hasCPTCode || len(refs.Procedures) == 0 {
		return ""
	}

	seen := make(map[string]struct{})
	var descriptions []string
	for _, row := range rows {
		v := row[roles.cptCode]
		if v.IsMissing() {
			continue
		}
		code := strings.TrimSpace(v.Value())
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		if proc, ok := refs.Procedures[code]; ok && proc.Description != "" {
			descriptions = append(descriptions, proc.Description)
		}
	}
	return strings.Join(descriptions, ", ")
}

// lookupProvider chains the first row's NPI through the providers table
// and, when the provider carries a facility id, through the facilities
// table. Each stage degrades to empty strings on its own.
func lookupProvider(first map[string]models.Scalar, roles roleColumns,
	refs reference.Tables) (name, specialty, state, facilityName string) {

	if !roles.hasNPI || len(refs.Providers) == 0 {
		return "", "", "", ""
	}
	v := first[roles.npi]
	if v.IsMissing() {
		return "", "", "", ""
	}

	provider, ok := refs.Providers[strings.TrimSpace(v.Value())]
	if !ok {
		return "", "", "", ""
	}
	name, specialty = provider.Name, provider.Specialty

	if provider.FacilityID == "" || len(refs.Facilities) == 0 {
		return name, specialty, "", ""
	}
	if facility, ok := refs.Facilities[provider.FacilityID]; ok {
		state, facilityName = facility.State, facility.Name
	}
	return name, specialty, state, facilityName
}
