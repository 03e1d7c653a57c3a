package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConstants = `{
  "operation_types": [
    ["VLOS", "VLOS"],
    ["NIGHT_VLOS", "Night VLOS"]
  ],
  "drone_platforms": [
    ["DJI", "DJI"],
    ["EBEE", "Ebee X"]
  ],
  "number_of_drones": [
    ["SINGLE", "Single Drone"],
    ["MULTIPLE", "Multiple Drones"]
  ]
}`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constants.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRegistryPreservesOrder(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, testConstants))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	opts := reg.Options(FacetOperationType)
	if len(opts) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(opts))
	}
	if opts[0].Code != "VLOS" || opts[1].Code != "NIGHT_VLOS" {
		t.Fatalf("option order = %v, want registry file order", opts)
	}
	if opts[1].DisplayName != "Night VLOS" {
		t.Fatalf("display name = %q, want %q", opts[1].DisplayName, "Night VLOS")
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, testConstants))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if !reg.Valid(FacetDronePlatform, "EBEE") {
		t.Fatal("EBEE should be a valid drone platform")
	}
	if reg.Valid(FacetDronePlatform, "BOGUS") {
		t.Fatal("BOGUS should not be a valid drone platform")
	}
	if reg.Valid(FacetOperationType, "EBEE") {
		t.Fatal("codes must not leak across facets")
	}
}

func TestLoadRegistryDisplayNameFallsBackToCode(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, testConstants))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := reg.DisplayName(FacetDroneCount, "SINGLE"); got != "Single Drone" {
		t.Fatalf("DisplayName = %q, want %q", got, "Single Drone")
	}
	if got := reg.DisplayName(FacetDroneCount, "UNKNOWN"); got != "UNKNOWN" {
		t.Fatalf("DisplayName fallback = %q, want the code itself", got)
	}
}

func TestLoadRegistryRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty facet list",
			content: `{"operation_types": [], "drone_platforms": [["DJI","DJI"]], "number_of_drones": [["SINGLE","Single"]]}`,
			wantErr: "no options defined",
		},
		{
			name:    "duplicate code",
			content: `{"operation_types": [["VLOS","VLOS"],["VLOS","Again"]], "drone_platforms": [["DJI","DJI"]], "number_of_drones": [["SINGLE","Single"]]}`,
			wantErr: "duplicate code",
		},
		{
			name:    "malformed pair",
			content: `{"operation_types": [["VLOS"]], "drone_platforms": [["DJI","DJI"]], "number_of_drones": [["SINGLE","Single"]]}`,
			wantErr: "want [code, display_name]",
		},
		{
			name:    "not json",
			content: `operation_types: nope`,
			wantErr: "parse registry",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRegistry(writeRegistry(t, tc.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing registry file")
	}
}

func TestRegistryFirst(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, testConstants))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := reg.First(FacetOperationType); got != "VLOS" {
		t.Fatalf("First = %q, want VLOS", got)
	}
}
