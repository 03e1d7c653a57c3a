// Package filter decides which procedure records apply to a selection and
// prunes the catalog down to the matching set.
package filter

import (
	"fmt"

	"github.com/wilddrones/preflight/internal/catalog"
	"github.com/wilddrones/preflight/internal/config"
)

// Selection is the user's chosen (operation type, drone platform, drone
// count) triple, by code.
type Selection struct {
	Operation string
	Platform  string
	Count     string
}

// String renders the triple in run-folder order.
func (s Selection) String() string {
	return fmt.Sprintf("%s_%s_%s", s.Operation, s.Platform, s.Count)
}

// UnknownCodeError reports a selection code absent from the registry.
type UnknownCodeError struct {
	Facet config.Facet
	Code  string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("filter: unknown %s code %q", e.Facet, e.Code)
}

// Validate checks every facet of the selection against the registry and
// returns an UnknownCodeError for the first unregistered code.
func (s Selection) Validate(reg *config.Registry) error {
	for _, check := range []struct {
		facet config.Facet
		code  string
	}{
		{config.FacetOperationType, s.Operation},
		{config.FacetDronePlatform, s.Platform},
		{config.FacetDroneCount, s.Count},
	} {
		if !reg.Valid(check.facet, check.code) {
			return &UnknownCodeError{Facet: check.facet, Code: check.code}
		}
	}
	return nil
}

// Matches reports whether a record applies to the selection. A record must
// match on all three facets independently; a universal scope matches any
// code. Matching is boolean, never scored.
func Matches(rec catalog.ProcedureRecord, sel Selection) bool {
	return rec.Operations.Matches(sel.Operation) &&
		rec.Platforms.Matches(sel.Platform) &&
		rec.Counts.Matches(sel.Count)
}

// Apply returns the documents pruned to the records matching the selection.
// Sections left without records are dropped, as are documents left without
// sections. Relative order of everything retained is preserved.
func Apply(docs []catalog.Document, sel Selection) []catalog.Document {
	var out []catalog.Document
	for _, doc := range docs {
		var sections []catalog.Section
		for _, sec := range doc.Sections {
			var recs []catalog.ProcedureRecord
			for _, rec := range sec.Procedures {
				if Matches(rec, sel) {
					recs = append(recs, rec)
				}
			}
			if len(recs) == 0 {
				continue
			}
			sections = append(sections, catalog.Section{Name: sec.Name, Procedures: recs})
		}
		if len(sections) == 0 {
			continue
		}
		out = append(out, catalog.Document{Title: doc.Title, Color: doc.Color, Sections: sections})
	}
	return out
}
