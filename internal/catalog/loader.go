package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// rawRecord mirrors the on-disk record shape. Facet fields are pointers so an
// absent field can default to the universal scope.
type rawRecord struct {
	ChecklistEntry string      `json:"checklist_entry"`
	Description    string      `json:"procedure_description"`
	OperationTypes *FacetScope `json:"operation_types"`
	DronePlatforms *FacetScope `json:"drone_platforms"`
	NumberOfDrones *FacetScope `json:"number_of_drones"`
}

type rawSection struct {
	Name       string      `json:"section"`
	Procedures []rawRecord `json:"procedures"`
}

type rawDocument struct {
	Title    string       `json:"title"`
	Color    RGB          `json:"color"`
	Sections []rawSection `json:"items"`
}

// LoadDir loads every *.json file in dir, in sorted filename order, and
// returns the parsed documents in that order. Any missing or malformed file
// is fatal: the caller never sees a partially loaded catalog.
func LoadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("catalog: no catalog files in %s", dir)
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		doc, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadFile loads a single catalog document.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	doc, err := raw.toDocument()
	if err != nil {
		return Document{}, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return doc, nil
}

func (raw rawDocument) toDocument() (Document, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return Document{}, fmt.Errorf("document is missing a title")
	}
	doc := Document{Title: raw.Title, Color: raw.Color}
	for si, rs := range raw.Sections {
		if strings.TrimSpace(rs.Name) == "" {
			return Document{}, fmt.Errorf("section %d is missing a name", si)
		}
		section := Section{Name: rs.Name}
		for ri, rr := range rs.Procedures {
			rec, err := rr.toRecord()
			if err != nil {
				return Document{}, fmt.Errorf("section %q, procedure %d: %w", rs.Name, ri, err)
			}
			section.Procedures = append(section.Procedures, rec)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func (rr rawRecord) toRecord() (ProcedureRecord, error) {
	if strings.TrimSpace(rr.ChecklistEntry) == "" {
		return ProcedureRecord{}, fmt.Errorf("missing checklist_entry")
	}
	if strings.TrimSpace(rr.Description) == "" {
		return ProcedureRecord{}, fmt.Errorf("missing procedure_description")
	}
	return ProcedureRecord{
		ChecklistEntry: rr.ChecklistEntry,
		Description:    rr.Description,
		Operations:     scopeOrUniversal(rr.OperationTypes),
		Platforms:      scopeOrUniversal(rr.DronePlatforms),
		Counts:         scopeOrUniversal(rr.NumberOfDrones),
	}, nil
}

// scopeOrUniversal applies the permissive default: a record with no stated
// restriction on a facet applies to every value of that facet.
func scopeOrUniversal(s *FacetScope) FacetScope {
	if s == nil {
		return Universal()
	}
	return *s
}
