// Package intake turns uploaded billing files into raw tables. A file
// participates when its name looks like a records export; XLSX workbooks
// are additionally sniffed sheet-by-sheet to split billing line-items from
// patient demographics.
package intake

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/royalket/demo-file-merger/log"
	"github.com/royalket/demo-file-merger/merger/models"
)

// Column names that mark a sheet as billing line-items vs. patient
// demographics. Matching is by exact lowercased column name.
var (
	recordMarkers  = []string{"claim_id", "cpt_code", "charge_amount", "rendering_npi"}
	patientMarkers = []string{"patient_id", "first_name", "last_name", "dob"}
)

// BuildTables scans the named payloads for the records table and the
// optional patients table. Files that fail to parse are logged and
// skipped; when several candidates exist the last one (by filename order)
// wins.
func BuildTables(files map[string][]byte) (records, patients *models.RawTable) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "records") {
			continue
		}
		switch {
		case strings.HasSuffix(lower, ".xlsx"):
			r, p, err := fromWorkbook(files[name])
			if err != nil {
				log.Pipeline.Warnf("Error processing file %s: %s", name, err.Error())
				continue
			}
			if r != nil {
				records = r
			}
			if p != nil {
				patients = p
			}
		case strings.HasSuffix(lower, ".csv"):
			table, err := FromCSV(files[name])
			if err != nil {
				log.Pipeline.Warnf("Error processing file %s: %s", name, err.Error())
				continue
			}
			records = table
		}
	}

	return records, patients
}

// FromCSV parses one CSV payload into a raw table. A leading byte order
// marker is stripped and every cell keeps its source text.
func FromCSV(data []byte) (*models.RawTable, error) {
	reader := utfbom.SkipOnly(bytes.NewReader(data))
	df := dataframe.ReadCSV(reader, dataframe.HasHeader(true), dataframe.DetectTypes(false))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", df.Err)
	}

	recs := df.Records()
	if len(recs) == 0 {
		return nil, fmt.Errorf("empty csv payload")
	}
	return fromRows(recs[0], recs[1:]), nil
}

// fromWorkbook sniffs every sheet of an XLSX payload, returning whichever
// records and patients tables it finds.
func fromWorkbook(data []byte) (records, patients *models.RawTable, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, sheet := range f.GetSheetList() {
		rows, rerr := f.GetRows(sheet)
		if rerr != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, rerr)
		}
		if len(rows) == 0 {
			continue
		}
		table := fromRows(rows[0], rows[1:])
		switch {
		case hasAnyColumn(rows[0], recordMarkers):
			records = table
		case hasAnyColumn(rows[0], patientMarkers):
			patients = table
		}
	}

	return records, patients, nil
}

func hasAnyColumn(header []string, markers []string) bool {
	for _, col := range header {
		lower := strings.ToLower(strings.TrimSpace(col))
		for _, marker := range markers {
			if lower == marker {
				return true
			}
		}
	}
	return false
}

// fromRows builds a raw table from a header row plus data rows. Empty
// cells and cells beyond the row's length become missing values, matching
// how sparse spreadsheet rows arrive truncated.
func fromRows(header []string, rows [][]string) *models.RawTable {
	columns := make([]string, len(header))
	copy(columns, header)

	table := &models.RawTable{
		Columns: columns,
		Rows:    make([]map[string]models.Scalar, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make(map[string]models.Scalar, len(columns))
		for i, col := range columns {
			if i >= len(row) || row[i] == "" {
				cells[col] = models.None
				continue
			}
			cells[col] = models.String(row[i])
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
