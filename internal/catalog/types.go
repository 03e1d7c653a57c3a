// Package catalog loads and models the procedure catalog: an ordered set of
// documents, each holding ordered sections of procedure records tagged with
// the facets they apply to.
package catalog

import (
	"encoding/json"
	"fmt"
)

// FacetScope is the set of facet codes a record applies to: either universal
// (the "ALL" sentinel) or an explicit code set. The two cases are distinct so
// an explicitly empty set means "matches nothing", not "no restriction".
type FacetScope struct {
	universal bool
	codes     []string
}

// Universal returns the scope matching every code.
func Universal() FacetScope {
	return FacetScope{universal: true}
}

// ScopeOf returns a scope matching exactly the given codes.
func ScopeOf(codes ...string) FacetScope {
	return FacetScope{codes: append([]string(nil), codes...)}
}

// IsUniversal reports whether the scope carries the ALL sentinel.
func (s FacetScope) IsUniversal() bool {
	return s.universal
}

// Matches reports whether the scope admits the given code.
func (s FacetScope) Matches(code string) bool {
	if s.universal {
		return true
	}
	for _, c := range s.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns a copy of the explicit code set; nil for a universal scope.
func (s FacetScope) Codes() []string {
	if s.universal {
		return nil
	}
	return append([]string(nil), s.codes...)
}

// UnmarshalJSON accepts either the literal string "ALL" or a list of codes.
// A list containing "ALL" is treated as universal, matching how the source
// data occasionally writes it.
func (s *FacetScope) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != "ALL" {
			return fmt.Errorf("catalog: facet scope string must be %q, got %q", "ALL", sentinel)
		}
		*s = Universal()
		return nil
	}

	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return fmt.Errorf("catalog: facet scope must be %q or a list of codes", "ALL")
	}
	for _, c := range codes {
		if c == "ALL" {
			*s = Universal()
			return nil
		}
	}
	*s = FacetScope{codes: codes}
	return nil
}

// ProcedureRecord is one checklist/manual entry.
type ProcedureRecord struct {
	// ChecklistEntry is the short line shown in the compact checklist.
	ChecklistEntry string

	// Description is the full text shown in the procedure manual.
	Description string

	Operations FacetScope
	Platforms  FacetScope
	Counts     FacetScope
}

// Section is a named, ordered group of records sharing a phase of operation.
type Section struct {
	Name       string
	Procedures []ProcedureRecord
}

// RGB is a document accent color. The zero value is black.
type RGB struct {
	R, G, B int
}

// UnmarshalJSON reads the [r, g, b] list form used by the catalog files.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var parts []int
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("catalog: color must be an [r, g, b] list")
	}
	if len(parts) != 3 {
		return fmt.Errorf("catalog: color must have 3 components, got %d", len(parts))
	}
	for _, v := range parts {
		if v < 0 || v > 255 {
			return fmt.Errorf("catalog: color component %d out of range 0-255", v)
		}
	}
	c.R, c.G, c.B = parts[0], parts[1], parts[2]
	return nil
}

// Document is one catalog file: a titled group of sections rendered with its
// own accent color and page run.
type Document struct {
	Title    string
	Color    RGB
	Sections []Section
}
