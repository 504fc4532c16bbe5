package report

import (
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mspb-data/spending.report/internal/mspb"
)

// A4 page size in millimetres.
const (
	pageWidthMM  = 210
	pageMarginMM = 10
)

const backgroundProse = "Medicare is a U.S. federal health insurance program primarily for people age 65 or older, but also for younger individuals with certain disabilities, or other chronic conditions. It provides care coverage through different parts, such as Part A for hospital stays and hospice care and Part B for doctors' services and outpatient care."

const measureProse = "According to the Centers for Medicaid and Medicare Services (CMS), the Medicare Spending Per Beneficiary (MSPB) Measure shows whether Medicare spends more, less, or about the same for an episode of care (episode) at a specific hospital compared to all hospitals nationally. An MSPB episode includes Medicare Part A and Part B payments for services provided by hospitals and other healthcare providers the 3 days prior to, during, and 30 days following a patient's inpatient stay. This measure evaluates hospitals' costs compared to the costs of the national median (or midpoint) hospital. This measure takes into account important factors like patient age and health status (risk adjustment) and geographic payment differences (payment-standardization)."

const conclusionsProse = "A lower MSPB score suggests that a hospital or provider is more cost-efficient than the national average, while a higher score indicates higher spending. The score is used to affect a hospital's payments from Medicare. A higher MSPB score (meaning higher spending) can result in lower incentive payments or financial penalties. Overall, the MSPB measure is designed to identify variations in spending and to incentivize providers to deliver high-quality care in a more cost-effective manner."

// PDFParams carries everything the one-page report needs.
type PDFParams struct {
	Title        string
	Year         int
	MapPNG       string
	TableCaption string
	Rows         []mspb.RegionRow
	TableColors  *SpendingColorMap
	Bullets      []string
	SourceNote   string
	Now          time.Time
}

// WritePDF assembles the one-page report and writes it to path.
func WritePDF(path string, params PDFParams) error {
	if params.Now.IsZero() {
		params.Now = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(params.Title, false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeLetterhead(pdf, params.Title, params.Now)

	writeSubtitle(pdf, "Background")
	writeParagraph(pdf, backgroundProse)
	pdf.Ln(5)
	writeParagraph(pdf, measureProse)
	pdf.Ln(5)

	writeSubtitle(pdf, "Visuals and Findings")

	// Table on the left, map on the right, like the original layout.
	visualsTop := pdf.GetY() + 4
	drawRegionTable(pdf, pageMarginMM, visualsTop, 95, params.TableCaption, params.Rows, params.TableColors)
	if params.MapPNG != "" {
		pdf.ImageOptions(params.MapPNG, 108, visualsTop, 92, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
	if params.SourceNote != "" {
		pdf.SetXY(108, visualsTop+62)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(85, 85, 85)
		pdf.MultiCell(92, 3, params.SourceNote, "", "L", false)
	}

	pdf.SetY(visualsTop + 70)
	for _, bullet := range params.Bullets {
		writeParagraph(pdf, "- "+bullet)
		pdf.Ln(2)
	}
	pdf.Ln(3)

	writeSubtitle(pdf, "Conclusions")
	writeParagraph(pdf, conclusionsProse)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func writeLetterhead(pdf *fpdf.Fpdf, title string, now time.Time) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Write(4, now.Format("January 2, 2006"))
	pdf.Ln(8)
}

func writeSubtitle(pdf *fpdf.Fpdf, subtitle string) {
	pdf.SetFont("Helvetica", "BU", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Write(5, subtitle)
	pdf.Ln(8)
}

func writeParagraph(pdf *fpdf.Fpdf, text string) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, text, "", "L", false)
}

// Column widths for the regional table, as fractions of the table width.
var tableColumns = []struct {
	header string
	frac   float64
	align  string
}{
	{"Region", 0.26, "L"},
	{"Total Hospitals", 0.19, "C"},
	{"w/ Scores", 0.19, "C"},
	{"w/o Scores", 0.19, "C"},
	{"Median Score", 0.17, "C"},
}

// drawRegionTable renders the styled regional rollup at a fixed
// position. Median cells are filled from the shared colormap; the
// Total row is bold with no median fill.
func drawRegionTable(pdf *fpdf.Fpdf, x, y, width float64, caption string, rows []mspb.RegionRow, cm *SpendingColorMap) {
	lineHeight := 6.5

	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(width, 6, caption, "", 2, "L", false, 0, "")

	// Header row.
	pdf.SetFont("Helvetica", "B", 7.5)
	pdf.SetFillColor(240, 240, 240)
	headerY := pdf.GetY()
	cx := x
	for _, col := range tableColumns {
		w := width * col.frac
		pdf.SetXY(cx, headerY)
		pdf.CellFormat(w, lineHeight, col.header, "1", 0, "C", true, 0, "")
		cx += w
	}
	rowY := headerY + lineHeight

	for _, row := range rows {
		style := ""
		if row.IsTotal {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)

		median := ""
		fill := false
		if row.HasMedian {
			median = fmt.Sprintf("%.2f", row.Median)
			if cm != nil {
				r, g, b := cm.RGB8(row.Median)
				pdf.SetFillColor(r, g, b)
				fill = true
			}
		}

		cells := []struct {
			text string
			fill bool
		}{
			{row.Region, false},
			{formatCount(row.TotalHospitals), false},
			{formatCount(row.WithScores), false},
			{formatCount(row.WithoutScores), false},
			{median, fill},
		}

		cx = x
		for i, col := range tableColumns {
			w := width * col.frac
			pdf.SetXY(cx, rowY)
			pdf.CellFormat(w, lineHeight, cells[i].text, "1", 0, col.align, cells[i].fill, 0, "")
			cx += w
		}
		rowY += lineHeight
	}
}
