package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/royalket/demo-file-merger/merger/models"
)

var testClaims = []models.ConsolidatedClaim{
	{
		ClaimID:               "C100",
		PatientName:           "Jane Doe",
		DateOfBirth:           "1990-01-01",
		Gender:                "F",
		Age:                   "30",
		TotalChargeAmount:     "$2400.00",
		StartingServiceDate:   "2020-01-10",
		ProcedureDescriptions: "Office visit, Extended visit",
		RenderingProviderName: "Dr. Alice Smith",
		ProviderSpecialty:     "Cardiology",
		FacilityState:         "OH",
		FacilityName:          "General Hospital",
	},
	{ClaimID: "C200", TotalChargeAmount: "$0.00"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testClaims))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "C100", rows[1][0])
	assert.Equal(t, "Office visit, Extended visit", rows[1][7])
	// Degraded fields serialize as empty cells, no placeholder
	assert.Equal(t, "", rows[2][1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testClaims))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { assert.NoError(t, f.Close()) }()

	rows, err := f.GetRows("Consolidated Claims")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "General Hospital", rows[1][11])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testClaims))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "C100", decoded[0]["Claim ID"])
	assert.Equal(t, "$2400.00", decoded[0]["Total Charge Amount"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestValuesMatchesColumnCount(t *testing.T) {
	assert.Len(t, Values(testClaims[0]), len(Columns))
}
