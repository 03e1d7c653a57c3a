package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Facet identifies one of the three filtering dimensions.
type Facet string

const (
	FacetOperationType Facet = "operation type"
	FacetDronePlatform Facet = "drone platform"
	FacetDroneCount    Facet = "drone count"
)

// Facets lists the three facets in presentation order.
func Facets() []Facet {
	return []Facet{FacetOperationType, FacetDronePlatform, FacetDroneCount}
}

// FacetOption is one selectable (code, display name) pair.
type FacetOption struct {
	Code        string
	DisplayName string
}

// Registry holds the ordered option lists for every facet, loaded from the
// constants file. Codes are unique within a facet; list order is presentation
// order.
type Registry struct {
	options map[Facet][]FacetOption
	index   map[Facet]map[string]string
}

// constantsFile mirrors the on-disk constants layout: each facet maps to an
// ordered list of [code, display_name] pairs.
type constantsFile struct {
	OperationTypes [][]string `json:"operation_types"`
	DronePlatforms [][]string `json:"drone_platforms"`
	NumberOfDrones [][]string `json:"number_of_drones"`
}

// LoadRegistry reads the facet registry from path. A missing or malformed
// file, an empty facet list, or a duplicated code is an error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read registry %s: %w", path, err)
	}

	var raw constantsFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse registry %s: %w", path, err)
	}

	reg := &Registry{
		options: make(map[Facet][]FacetOption),
		index:   make(map[Facet]map[string]string),
	}
	for facet, pairs := range map[Facet][][]string{
		FacetOperationType: raw.OperationTypes,
		FacetDronePlatform: raw.DronePlatforms,
		FacetDroneCount:    raw.NumberOfDrones,
	} {
		opts, err := parseOptions(facet, pairs)
		if err != nil {
			return nil, fmt.Errorf("config: registry %s: %w", path, err)
		}
		reg.options[facet] = opts
		reg.index[facet] = make(map[string]string, len(opts))
		for _, opt := range opts {
			reg.index[facet][opt.Code] = opt.DisplayName
		}
	}
	return reg, nil
}

func parseOptions(facet Facet, pairs [][]string) ([]FacetOption, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%s: no options defined", facet)
	}
	opts := make([]FacetOption, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%s: entry %d: want [code, display_name], got %d elements", facet, i, len(pair))
		}
		code, name := pair[0], pair[1]
		if code == "" {
			return nil, fmt.Errorf("%s: entry %d: empty code", facet, i)
		}
		if seen[code] {
			return nil, fmt.Errorf("%s: duplicate code %q", facet, code)
		}
		seen[code] = true
		opts = append(opts, FacetOption{Code: code, DisplayName: name})
	}
	return opts, nil
}

// Options returns the ordered option list for a facet.
func (r *Registry) Options(facet Facet) []FacetOption {
	return r.options[facet]
}

// Valid reports whether code is a registered option of the facet.
func (r *Registry) Valid(facet Facet, code string) bool {
	_, ok := r.index[facet][code]
	return ok
}

// DisplayName resolves a code to its display name, falling back to the code
// itself for anything unregistered.
func (r *Registry) DisplayName(facet Facet, code string) string {
	if name, ok := r.index[facet][code]; ok {
		return name
	}
	return code
}

// First returns the code of the facet's first option. Used as the fallback
// default selection.
func (r *Registry) First(facet Facet) string {
	opts := r.options[facet]
	if len(opts) == 0 {
		return ""
	}
	return opts[0].Code
}
