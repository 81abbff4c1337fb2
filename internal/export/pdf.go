// Package export writes packing results to PDF layouts, printable QR labels
// and Excel reports.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/rectpack/internal/model"
)

// itemColor represents an RGB fill color for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one page per bin with its layout drawn to scale, followed
// by a summary page.
func ExportPDF(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, bin := range result.Bins {
		pdf.AddPage()
		renderBinPage(pdf, bin)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single bin on the current page. Bin coordinates have
// their origin at the lower-left corner, so y is flipped for the page.
func renderBinPage(pdf *fpdf.Fpdf, bin model.BinResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%d x %d)", bin.Index+1, bin.Width, bin.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used area: %d | Total area: %d | Efficiency: %.1f%% | Touching: %.0f%%",
		len(bin.Placements), bin.UsedArea(), bin.TotalArea(), bin.Efficiency(), bin.TouchingRatio*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/float64(bin.Width), drawHeight/float64(bin.Height))

	canvasW := float64(bin.Width) * scale
	canvasH := float64(bin.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range bin.Placements {
		col := itemColors[i%len(itemColors)]
		pw := float64(p.Width) * scale
		ph := float64(p.Height) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(bin.Height-p.Y-p.Height)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			drawItemLabel(pdf, p, px, py, pw, ph)
		}
	}

	drawDimensionAnnotations(pdf, bin, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, bin, offsetY+canvasH+5)
}

// drawItemLabel centres the item label and its size inside the drawn rect.
func drawItemLabel(pdf *fpdf.Fpdf, p model.Placement, px, py, pw, ph float64) {
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := p.Item.Label
	dims := fmt.Sprintf("%dx%d", p.Width, p.Height)
	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	if ph > 14 && dimsW < pw-2 {
		pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds width and height labels outside the bin.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bin model.BinResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", bin.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", bin.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders a compact legend of the bin's items below the drawing.
func drawLegend(pdf *fpdf.Fpdf, bin model.BinResult, startY float64) {
	if len(bin.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range bin.Placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%dx%d @ %d,%d)", p.Item.Label, p.Item.Width, p.Item.Height, p.X, p.Y)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws overall statistics, the per-bin table and the
// settings the packing was produced with.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = renderKeyValues(pdf, "Overall Statistics", y, []keyValue{
		{"Bins Used", fmt.Sprintf("%d", result.NumberOfBins())},
		{"Lower Bound", fmt.Sprintf("%d", result.LowerBound)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Items Placed", fmt.Sprintf("%d", result.ItemCount())},
	})
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 30, 35, 60}
	headers := []string{"Bin", "Dimensions", "Items", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, bin := range result.Bins {
		// Long runs continue on a fresh page
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		row := []string{
			fmt.Sprintf("%d", bin.Index+1),
			fmt.Sprintf("%d x %d", bin.Width, bin.Height),
			fmt.Sprintf("%d", len(bin.Placements)),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
			fmt.Sprintf("%d / %d", bin.UsedArea(), bin.TotalArea()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	s := result.Settings
	renderKeyValues(pdf, "Packing Settings", y, []keyValue{
		{"Heuristic", string(s.Heuristic)},
		{"Strategy", string(s.Strategy)},
		{"Rotation", fmt.Sprintf("%t", s.AllowRotation)},
		{"Item Order", string(s.Order)},
		{"Seed", fmt.Sprintf("%d", s.Seed)},
	})

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by rectpack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type keyValue struct {
	label string
	value string
}

// renderKeyValues draws a titled list of label/value pairs starting at y and
// returns the y position below it.
func renderKeyValues(pdf *fpdf.Fpdf, title string, y float64, items []keyValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// labelFontSize returns a font size that fits the drawn rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
