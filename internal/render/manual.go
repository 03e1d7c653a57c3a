package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/wilddrones/preflight/internal/catalog"
	"github.com/wilddrones/preflight/internal/filter"
)

// Manual layout constants (A4, millimetres).
const (
	manualFontSize    = 12.0
	manualHeadingSize = 14.0
	manualLineHeight  = 10.0
	manualParSpacing  = 8.0
	manualRightMargin = 20.0
	manualBoxWidth    = 180.0
	manualTitleWidth  = 125.0
	manualLeft        = 10.0
)

// Manual renders the detailed A4 procedure manual: per record the checklist
// entry as a bold lead-in followed by the full procedure description.
func (r *Renderer) Manual(docs []catalog.Document, sel filter.Selection) ([]byte, error) {
	pdf, fonts := r.newDoc("A4")
	pdf.SetRightMargin(manualRightMargin)
	if len(docs) == 0 {
		r.emptyPage(pdf, fonts, sel, manualTitleWidth, manualFontSize, manualBoxWidth)
		return output(pdf)
	}
	for _, doc := range docs {
		r.manualDocument(pdf, fonts, doc, sel)
	}
	return output(pdf)
}

func (r *Renderer) manualDocument(pdf *fpdf.Fpdf, fonts fontSet, doc catalog.Document, sel filter.Selection) {
	color := rgb{doc.Color.R, doc.Color.G, doc.Color.B}
	page := 1
	pdf.AddPage()
	setFont(pdf, fonts.body, manualFontSize)

	header := func(title string) {
		r.banner(pdf, fonts, title, manualTitleWidth, manualLineHeight)
		r.metadata(pdf, fonts, sel, manualFontSize-3, manualBoxWidth)
		accentBand(pdf, color)
		pdf.SetTextColor(0, 0, 0)
		setFont(pdf, fonts.body, manualFontSize)
	}

	total := 0.0
	for _, sec := range doc.Sections {
		total += r.manualSectionHeight(pdf, sec)
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+total > pageHeight-bottom {
		header(fmt.Sprintf("%s (%d)", doc.Title, page))
	} else {
		header(doc.Title)
	}

	for _, sec := range doc.Sections {
		height := r.manualSectionHeight(pdf, sec)

		if pdf.GetY()+height > pageHeight-bottom {
			page++
			pdf.AddPage()
			header(fmt.Sprintf("%s (%d)", doc.Title, page))
		}

		top := pdf.GetY()
		pdf.Rect(manualLeft, top, manualBoxWidth, height, "D")
		pdf.SetFillColor(color.r, color.g, color.b)
		pdf.Rect(manualLeft, top, manualBoxWidth, manualLineHeight, "F")
		setFont(pdf, fonts.heading, manualHeadingSize)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(manualLeft)
		pdf.CellFormat(manualBoxWidth, manualLineHeight, sec.Name, "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		setFont(pdf, fonts.body, manualFontSize)

		for _, rec := range sec.Procedures {
			setFont(pdf, fonts.bodyBold, manualFontSize)
			pdf.Write(manualParSpacing, rec.ChecklistEntry+": ")
			setFont(pdf, fonts.body, manualFontSize)
			pdf.Write(manualParSpacing, rec.Description)
			pdf.Ln(manualLineHeight)
		}
	}
	pdf.Ln(manualLineHeight)
}

// manualSectionHeight estimates the drawn height of a section: header strip
// plus the wrapped entry+description run per record.
func (r *Renderer) manualSectionHeight(pdf *fpdf.Fpdf, sec catalog.Section) float64 {
	height := manualLineHeight
	for _, rec := range sec.Procedures {
		lines := wrappedLines(pdf, rec.ChecklistEntry+": "+rec.Description, manualBoxWidth-7)
		height += (lines-1)*manualParSpacing + manualLineHeight
	}
	return height
}
