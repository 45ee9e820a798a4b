// Package reference builds the lookup tables that enrich consolidated
// claims: procedure descriptions, provider identity, and facility
// location. Reference payloads are JSON files routed by filename keyword;
// a malformed payload yields an empty table for that category so the rest
// of the pipeline can continue.
package reference

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/royalket/demo-file-merger/log"
)

type Procedure struct {
	Code        string `mapstructure:"code"`
	Description string `mapstructure:"description"`
}

type Provider struct {
	NPI        string `mapstructure:"npi"`
	Name       string `mapstructure:"name"`
	Specialty  string `mapstructure:"specialty"`
	FacilityID string `mapstructure:"facility_id"`
}

type Facility struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	State string `mapstructure:"state"`
}

// Tables holds every reference lookup, keyed by natural id. Empty maps
// mean the category was absent or failed to parse; lookups against them
// degrade to empty enrichment fields.
type Tables struct {
	Procedures map[string]Procedure
	Providers  map[string]Provider
	Facilities map[string]Facility
}

// Load routes the named payloads by filename keyword and parses each
// category independently. Files matching no keyword are ignored here; the
// intake layer may still consume them as the records or patients table.
func Load(files map[string][]byte) Tables {
	tables := Tables{
		Procedures: map[string]Procedure{},
		Providers:  map[string]Provider{},
		Facilities: map[string]Facility{},
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".json") {
			continue
		}
		var err error
		switch {
		case strings.Contains(lower, "procedures"):
			err = loadProcedures(files[name], tables.Procedures)
		case strings.Contains(lower, "providers"):
			err = loadProviders(files[name], tables.Providers)
		case strings.Contains(lower, "facilities"):
			err = loadFacilities(files[name], tables.Facilities)
		}
		if err != nil {
			log.Pipeline.Warnf("Error loading reference file %s: %s", name, err.Error())
		}
	}

	return tables
}

func loadProcedures(data []byte, out map[string]Procedure) error {
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	for _, record := range records {
		var p Procedure
		if err := decode(record, &p); err != nil {
			return err
		}
		if p.Code != "" {
			out[p.Code] = p
		}
	}
	return nil
}

func loadProviders(data []byte, out map[string]Provider) error {
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	for _, record := range records {
		var p Provider
		if err := decode(record, &p); err != nil {
			return err
		}
		if p.NPI != "" {
			out[p.NPI] = p
		}
	}
	return nil
}

// Facilities arrive as a mapping from facility id to a nested info
// object. Each entry is flattened into a single record carrying an
// explicit id plus all info fields, with a nested address object merged
// over the top (overwriting on key collision).
func loadFacilities(data []byte, out map[string]Facility) error {
	var entries map[string]map[string]interface{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for id, info := range entries {
		record := map[string]interface{}{"id": id}
		for k, v := range info {
			record[k] = v
		}
		if address, ok := info["address"].(map[string]interface{}); ok {
			for k, v := range address {
				record[k] = v
			}
			delete(record, "address")
		}

		var f Facility
		if err := decode(record, &f); err != nil {
			return err
		}
		out[f.ID] = f
	}
	return nil
}

// decode maps a loosely typed JSON record onto a reference struct,
// coercing numeric ids (a common artifact of spreadsheet-exported JSON)
// to strings.
func decode(record map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(record)
}
