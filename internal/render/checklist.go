package render

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/wilddrones/preflight/internal/catalog"
	"github.com/wilddrones/preflight/internal/filter"
)

// Checklist layout constants (A5, millimetres).
const (
	checklistFontSize   = 10.0
	checklistLineHeight = checklistFontSize / 2
	checklistBoxWidth   = 120.0
	checklistBullet     = 5.0
	checklistTitleWidth = 75.0
	checklistLeft       = 10.0
)

// Checklist renders the compact A5 checklist: one titled run of pages per
// document, each section as a boxed block of check-off lines.
func (r *Renderer) Checklist(docs []catalog.Document, sel filter.Selection) ([]byte, error) {
	pdf, fonts := r.newDoc("A5")
	if len(docs) == 0 {
		r.emptyPage(pdf, fonts, sel, checklistTitleWidth, checklistFontSize, checklistBoxWidth)
		return output(pdf)
	}
	for _, doc := range docs {
		r.checklistDocument(pdf, fonts, doc, sel)
	}
	return output(pdf)
}

func (r *Renderer) checklistDocument(pdf *fpdf.Fpdf, fonts fontSet, doc catalog.Document, sel filter.Selection) {
	color := rgb{doc.Color.R, doc.Color.G, doc.Color.B}
	page := 1
	pdf.AddPage()
	setFont(pdf, fonts.body, checklistFontSize)

	header := func(title string) {
		r.banner(pdf, fonts, title, checklistTitleWidth, checklistLineHeight*1.5)
		r.metadata(pdf, fonts, sel, checklistFontSize-3, checklistBoxWidth)
		accentBand(pdf, color)
		pdf.SetTextColor(0, 0, 0)
		setFont(pdf, fonts.body, checklistFontSize)
	}

	// When the whole document overflows a single page, number the pages
	// starting from the first.
	total := 0.0
	for _, sec := range doc.Sections {
		total += r.checklistSectionHeight(pdf, sec)
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+total > pageHeight-bottom {
		header(fmt.Sprintf("%s (%d)", doc.Title, page))
	} else {
		header(doc.Title)
	}

	for _, sec := range doc.Sections {
		height := r.checklistSectionHeight(pdf, sec)

		// Never split a section header from its first item: start a new
		// page when the block won't fit in the remaining space.
		if pdf.GetY()+height > pageHeight-bottom {
			page++
			pdf.AddPage()
			header(fmt.Sprintf("%s (%d)", doc.Title, page))
		}

		top := pdf.GetY()
		pdf.Rect(checklistLeft, top, checklistBoxWidth, height, "D")
		pdf.SetFillColor(color.r, color.g, color.b)
		pdf.Rect(checklistLeft, top, checklistBoxWidth, checklistLineHeight, "F")
		setFont(pdf, fonts.heading, checklistFontSize+2)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(checklistLeft)
		pdf.CellFormat(checklistBoxWidth, checklistLineHeight, sec.Name, "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		setFont(pdf, fonts.body, checklistFontSize)

		for _, rec := range sec.Procedures {
			y := pdf.GetY()
			pdf.Rect(checklistLeft+1, y+1, 3, 3, "D")
			pdf.SetX(checklistLeft + checklistBullet)
			pdf.MultiCell(checklistBoxWidth-checklistBullet, checklistLineHeight, rec.ChecklistEntry, "", "L", false)
		}
	}
	pdf.Ln(checklistLineHeight)
}

// checklistSectionHeight estimates the drawn height of a section block:
// header strip plus one wrapped line run per record. Assumes the body font is
// current.
func (r *Renderer) checklistSectionHeight(pdf *fpdf.Fpdf, sec catalog.Section) float64 {
	height := checklistLineHeight
	for _, rec := range sec.Procedures {
		height += checklistLineHeight * wrappedLines(pdf, rec.ChecklistEntry, checklistBoxWidth-checklistBullet)
	}
	return height
}

// wrappedLines approximates how many lines MultiCell will use for text at the
// given width.
func wrappedLines(pdf *fpdf.Fpdf, text string, width float64) float64 {
	return math.Floor(pdf.GetStringWidth(text)/width) + 1
}

// emptyPage renders a single page stating that nothing matched, so an empty
// filter result still yields a well-formed document.
func (r *Renderer) emptyPage(pdf *fpdf.Fpdf, fonts fontSet, sel filter.Selection, titleWidth, fontSize, boxWidth float64) {
	pdf.AddPage()
	r.banner(pdf, fonts, "Drone Operations", titleWidth, fontSize/2)
	r.metadata(pdf, fonts, sel, fontSize-3, boxWidth)
	setFont(pdf, fonts.body, fontSize)
	pdf.Ln(fontSize / 2)
	pdf.CellFormat(boxWidth, fontSize/2, "No procedures match this selection.", "", 1, "L", false, 0, "")
}
