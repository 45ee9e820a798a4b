// Package gen produces synthetic billing files for tests and local
// exercising of the pipeline. Values are random but shaped like real
// exports: noisy currency strings, mixed date formats, sparse cells.
package gen

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	randomdata "github.com/Pallinder/go-randomdata"
)

var (
	minBirthDate = time.Date(1940, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxBirthDate = time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC)

	minServiceDate = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxServiceDate = time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)

	cptCodes    = []string{"99213", "99214", "99215", "99203", "99204", "93000", "36415"}
	specialties = []string{"Cardiology", "Dermatology", "Family Medicine", "Oncology", "Orthopedics"}
)

func patientID(i int) string { return fmt.Sprintf("P%03d", i) }
func claimID(i int) string   { return fmt.Sprintf("CLM-%05d", i) }
func npi(i int) string       { return fmt.Sprintf("1%09d", i) }
func facilityID(i int) string {
	return fmt.Sprintf("FAC%03d", i)
}

// RecordsCSV generates a billing line-item table with the given number of
// distinct claims and line-items per claim. Charge cells carry realistic
// currency noise.
func RecordsCSV(claims, linesPerClaim, patients, providers int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	must(w.Write([]string{"claim_id", "patient_id", "cpt_code", "charge_amount", "date_of_service", "rendering_npi"}))
	for c := 0; c < claims; c++ {
		for l := 0; l < linesPerClaim; l++ {
			must(w.Write([]string{
				claimID(c),
				patientID(c % patients),
				randomdata.StringSample(cptCodes...),
				noisyCharge(),
				randomDate(minServiceDate, maxServiceDate),
				npi(c % providers),
			}))
		}
	}
	w.Flush()
	return buf.Bytes()
}

// PatientsCSV generates a demographics table matching the patient ids
// RecordsCSV hands out.
func PatientsCSV(patients int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	must(w.Write([]string{"patient_id", "first_name", "last_name", "dob", "gender"}))
	for p := 0; p < patients; p++ {
		must(w.Write([]string{
			patientID(p),
			randomdata.FirstName(randomdata.RandomGender),
			randomdata.LastName(),
			randomDate(minBirthDate, maxBirthDate),
			randomdata.StringSample("M", "F"),
		}))
	}
	w.Flush()
	return buf.Bytes()
}

// ProceduresJSON generates the procedure reference covering every CPT
// code RecordsCSV can emit.
func ProceduresJSON() []byte {
	type procedure struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	procedures := make([]procedure, 0, len(cptCodes))
	for _, code := range cptCodes {
		procedures = append(procedures, procedure{
			Code:        code,
			Description: "Procedure " + code,
		})
	}
	return mustMarshal(procedures)
}

// ProvidersJSON generates the provider reference covering every NPI
// RecordsCSV can emit, each assigned to one of the given facilities.
func ProvidersJSON(providers, facilities int) []byte {
	type provider struct {
		NPI        string `json:"npi"`
		Name       string `json:"name"`
		Specialty  string `json:"specialty"`
		FacilityID string `json:"facility_id"`
	}
	out := make([]provider, 0, providers)
	for p := 0; p < providers; p++ {
		out = append(out, provider{
			NPI:        npi(p),
			Name:       "Dr. " + randomdata.FullName(randomdata.RandomGender),
			Specialty:  randomdata.StringSample(specialties...),
			FacilityID: facilityID(p % facilities),
		})
	}
	return mustMarshal(out)
}

// FacilitiesJSON generates the facility reference in its nested
// id-to-info shape, state tucked inside the address object.
func FacilitiesJSON(facilities int) []byte {
	type address struct {
		Street string `json:"street"`
		City   string `json:"city"`
		State  string `json:"state"`
	}
	type info struct {
		Name    string  `json:"name"`
		Address address `json:"address"`
	}

	out := make(map[string]info, facilities)
	for f := 0; f < facilities; f++ {
		out[facilityID(f)] = info{
			Name: randomdata.City() + " Medical Center",
			Address: address{
				Street: randomdata.Address(),
				City:   randomdata.City(),
				State:  randomdata.State(randomdata.Small),
			},
		}
	}
	return mustMarshal(out)
}

// noisyCharge renders an amount the way exports do: sometimes a bare
// number, sometimes with a dollar sign, sometimes with a thousands
// separator.
func noisyCharge() string {
	amount := randomdata.Decimal(10, 5000, 2)
	switch rand.Intn(3) {
	case 0:
		return strconv.FormatFloat(amount, 'f', 2, 64)
	case 1:
		return fmt.Sprintf("$%.2f", amount)
	default:
		whole := int(amount)
		if whole < 1000 {
			return fmt.Sprintf("$%d", whole)
		}
		return fmt.Sprintf("$%d,%03d", whole/1000, whole%1000)
	}
}

func randomDate(min, max time.Time) string {
	span := max.Unix() - min.Unix()
	d := time.Unix(min.Unix()+rand.Int63n(span), 0).UTC()
	// Mixed formats on purpose, the pipeline has to cope
	if rand.Intn(2) == 0 {
		return d.Format("2006-01-02")
	}
	return d.Format("01/02/2006")
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
