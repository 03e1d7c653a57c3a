// Package render turns a filtered catalog into the two PDF layouts: the
// compact A5 checklist and the detailed A4 procedure manual. Both render to
// in-memory byte slices; nothing touches the output directory from here.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/wilddrones/preflight/internal/config"
	"github.com/wilddrones/preflight/internal/filter"
)

// fontRef names a registered fpdf family/style pair.
type fontRef struct {
	family string
	style  string
}

// fontSet resolves the four typographic roles the layouts use. Roles without
// a configured TTF fall back to the built-in Helvetica.
type fontSet struct {
	body     fontRef
	bodyBold fontRef
	title    fontRef
	heading  fontRef
}

// Renderer produces the checklist and manual PDFs for one selection.
type Renderer struct {
	registry *config.Registry
	assets   config.AssetsConfig
	now      func() time.Time
}

// Option customizes a Renderer during construction.
type Option func(*Renderer)

// WithClock overrides the clock stamped into the metadata strip. Tests use
// this to make output reproducible.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		r.now = clock
	}
}

// New builds a renderer. Every configured asset path is verified up front so
// a missing font or logo fails before any bytes are produced.
func New(reg *config.Registry, assets config.AssetsConfig, opts ...Option) (*Renderer, error) {
	for _, asset := range []struct {
		role string
		path string
	}{
		{"logo", assets.Logo},
		{"body font", assets.Fonts.Body},
		{"body bold font", assets.Fonts.BodyBold},
		{"title font", assets.Fonts.Title},
		{"heading font", assets.Fonts.Heading},
	} {
		if asset.path == "" {
			continue
		}
		if _, err := os.Stat(asset.path); err != nil {
			return nil, fmt.Errorf("render: %s %s: %w", asset.role, asset.path, err)
		}
	}

	r := &Renderer{
		registry: reg,
		assets:   assets,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// newDoc creates a page-less document of the given size with the font roles
// registered.
func (r *Renderer) newDoc(size string) (*fpdf.Fpdf, fontSet) {
	pdf := fpdf.New("P", "mm", size, "")
	// Pin the document dates to the injected clock so identical input
	// renders to identical bytes.
	pdf.SetCreationDate(r.now())
	pdf.SetModificationDate(r.now())

	set := fontSet{
		body:     fontRef{family: "Helvetica"},
		bodyBold: fontRef{family: "Helvetica", style: "B"},
		title:    fontRef{family: "Helvetica", style: "B"},
		heading:  fontRef{family: "Helvetica", style: "B"},
	}
	if path := r.assets.Fonts.Body; path != "" {
		pdf.AddUTF8Font("Body", "", path)
		set.body = fontRef{family: "Body"}
	}
	if path := r.assets.Fonts.BodyBold; path != "" {
		pdf.AddUTF8Font("Body", "B", path)
		set.bodyBold = fontRef{family: "Body", style: "B"}
	}
	if path := r.assets.Fonts.Title; path != "" {
		pdf.AddUTF8Font("Title", "", path)
		set.title = fontRef{family: "Title"}
	}
	if path := r.assets.Fonts.Heading; path != "" {
		pdf.AddUTF8Font("Heading", "", path)
		set.heading = fontRef{family: "Heading"}
	}
	return pdf, set
}

func setFont(pdf *fpdf.Fpdf, ref fontRef, size float64) {
	pdf.SetFont(ref.family, ref.style, size)
}

// banner draws the logo and uppercased document title centered at the top of
// the current page.
func (r *Renderer) banner(pdf *fpdf.Fpdf, fonts fontSet, title string, maxTitleWidth, spacing float64) {
	if r.assets.Logo != "" {
		pdf.ImageOptions(r.assets.Logo, 10, 6, 28, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
	setFont(pdf, fonts.title, 20)
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetX((pageWidth - maxTitleWidth) / 2)
	pdf.MultiCell(maxTitleWidth, 10, strings.ToUpper(title), "", "C", false)
	pdf.Ln(spacing)
}

// metadata draws the grey strip naming the selection (by display name) and
// the generation time.
func (r *Renderer) metadata(pdf *fpdf.Fpdf, fonts fontSet, sel filter.Selection, fontSize, boxWidth float64) {
	setFont(pdf, fonts.body, fontSize)
	line := fmt.Sprintf("%s | %s | %s | %s",
		r.registry.DisplayName(config.FacetOperationType, sel.Operation),
		r.registry.DisplayName(config.FacetDronePlatform, sel.Platform),
		r.registry.DisplayName(config.FacetDroneCount, sel.Count),
		r.now().Format("02-01-2006 15:04"),
	)
	pdf.SetFillColor(211, 211, 211)
	pdf.CellFormat(boxWidth, fontSize*0.6, line, "1", 1, "C", true, 0, "")
}

// bandWidth is the width of the accent color band on the right page edge.
const bandWidth = 9

// accentBand paints the document's color band down the right page edge.
func accentBand(pdf *fpdf.Fpdf, color rgb) {
	pageWidth, pageHeight := pdf.GetPageSize()
	pdf.SetFillColor(color.r, color.g, color.b)
	pdf.Rect(pageWidth-bandWidth, 0, bandWidth, pageHeight, "F")
}

type rgb struct {
	r, g, b int
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
