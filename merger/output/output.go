// Package output serializes a consolidated claim set to the supported
// download containers. Column order is fixed and identical across every
// container.
package output

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/royalket/demo-file-merger/merger/models"
)

// Columns is the canonical output column order.
var Columns = []string{
	"Claim ID",
	"Patient Name",
	"Date of Birth",
	"Gender",
	"Age",
	"Total Charge Amount",
	"Starting Service Date",
	"Procedure Descriptions",
	"Rendering Provider Name",
	"Provider Specialty",
	"Facility State",
	"Facility Name",
}

// Values renders one claim as a row in canonical column order.
func Values(c models.ConsolidatedClaim) []string {
	return []string{
		c.ClaimID,
		c.PatientName,
		c.DateOfBirth,
		c.Gender,
		c.Age,
		c.TotalChargeAmount,
		c.StartingServiceDate,
		c.ProcedureDescriptions,
		c.RenderingProviderName,
		c.ProviderSpecialty,
		c.FacilityState,
		c.FacilityName,
	}
}

// WriteCSV writes the claim set as delimited text with a header row.
func WriteCSV(w io.Writer, claims []models.ConsolidatedClaim) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, claim := range claims {
		if err := cw.Write(Values(claim)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Consolidated Claims"

// WriteXLSX writes the claim set as a single-sheet workbook.
func WriteXLSX(w io.Writer, claims []models.ConsolidatedClaim) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	header := make([]interface{}, len(Columns))
	for i, col := range Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, claim := range claims {
		row := make([]interface{}, 0, len(Columns))
		for _, v := range Values(claim) {
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteJSON writes the claim set as a structured-record array keyed by the
// canonical column headers.
func WriteJSON(w io.Writer, claims []models.ConsolidatedClaim) error {
	if claims == nil {
		claims = []models.ConsolidatedClaim{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(claims)
}
