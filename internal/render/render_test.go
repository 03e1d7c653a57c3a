package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wilddrones/preflight/internal/catalog"
	"github.com/wilddrones/preflight/internal/config"
	"github.com/wilddrones/preflight/internal/filter"
)

var testSelection = filter.Selection{Operation: "VLOS", Platform: "DJI", Count: "SINGLE"}

func testRegistry(t *testing.T) *config.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constants.json")
	content := `{
		"operation_types": [["VLOS", "VLOS"]],
		"drone_platforms": [["DJI", "DJI"]],
		"number_of_drones": [["SINGLE", "Single Drone"]]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := config.LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func testDocs() []catalog.Document {
	rec := func(entry, desc string) catalog.ProcedureRecord {
		return catalog.ProcedureRecord{
			ChecklistEntry: entry,
			Description:    desc,
			Operations:     catalog.Universal(),
			Platforms:      catalog.Universal(),
			Counts:         catalog.Universal(),
		}
	}
	return []catalog.Document{{
		Title: "Flight Checklist",
		Color: catalog.RGB{R: 46, G: 94, B: 170},
		Sections: []catalog.Section{
			{Name: "Pre-Flight", Procedures: []catalog.ProcedureRecord{
				rec("Check weather", "Compare forecast wind and precipitation against the platform's operating limits before committing to the flight window."),
				rec("Inspect propellers", "Check each propeller for chips and confirm all are seated and locked."),
			}},
			{Name: "Recovery", Procedures: []catalog.ProcedureRecord{
				rec("Power down and log flight", "Disarm, remove batteries, record flight time and defects."),
			}},
		},
	}}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	at := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	r, err := New(testRegistry(t), config.AssetsConfig{}, WithClock(func() time.Time { return at }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestChecklistProducesPDF(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Checklist(testDocs(), testSelection)
	if err != nil {
		t.Fatalf("Checklist: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:16])
	}
	if len(data) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestManualProducesPDF(t *testing.T) {
	r := newTestRenderer(t)
	data, err := r.Manual(testDocs(), testSelection)
	if err != nil {
		t.Fatalf("Manual: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:16])
	}
}

// With the clock pinned, rendering the same input twice yields identical
// bytes, which is what makes run folders comparable across regenerations.
func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	first, err := r.Checklist(testDocs(), testSelection)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Checklist(testDocs(), testSelection)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("renders of identical input differ")
	}
}

func TestEmptyFilterResultStillRenders(t *testing.T) {
	r := newTestRenderer(t)
	for _, render := range []func([]catalog.Document, filter.Selection) ([]byte, error){r.Checklist, r.Manual} {
		data, err := render(nil, testSelection)
		if err != nil {
			t.Fatalf("render of empty catalog: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatal("empty result must still be a well-formed PDF")
		}
	}
}

func TestNewRejectsMissingConfiguredAssets(t *testing.T) {
	reg := testRegistry(t)

	cases := []struct {
		name   string
		assets config.AssetsConfig
	}{
		{"missing logo", config.AssetsConfig{Logo: "does/not/exist.png"}},
		{"missing body font", config.AssetsConfig{Fonts: config.FontsConfig{Body: "does/not/exist.ttf"}}},
		{"missing heading font", config.AssetsConfig{Fonts: config.FontsConfig{Heading: "does/not/exist.ttf"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(reg, tc.assets)
			if err == nil {
				t.Fatal("expected an error for a configured asset that does not exist")
			}
			if !strings.Contains(err.Error(), "render:") {
				t.Fatalf("error = %q, want a render-stage error", err)
			}
		})
	}
}

func TestLongSectionsPaginate(t *testing.T) {
	r := newTestRenderer(t)

	var sections []catalog.Section
	for i := 0; i < 12; i++ {
		var recs []catalog.ProcedureRecord
		for j := 0; j < 8; j++ {
			recs = append(recs, catalog.ProcedureRecord{
				ChecklistEntry: "A reasonably long checklist entry that will wrap onto more than one line in the compact layout",
				Description:    "Long description text.",
				Operations:     catalog.Universal(),
				Platforms:      catalog.Universal(),
				Counts:         catalog.Universal(),
			})
		}
		sections = append(sections, catalog.Section{Name: "Section", Procedures: recs})
	}
	docs := []catalog.Document{{Title: "Big", Sections: sections}}

	short, err := r.Checklist(testDocs(), testSelection)
	if err != nil {
		t.Fatalf("short render: %v", err)
	}
	long, err := r.Checklist(docs, testSelection)
	if err != nil {
		t.Fatalf("long render: %v", err)
	}
	if len(long) <= len(short) {
		t.Fatalf("multi-page document (%d bytes) should be larger than single-page (%d bytes)", len(long), len(short))
	}
}
