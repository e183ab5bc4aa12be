package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"stocksphere/internal/analytics"
	"stocksphere/internal/views"

	"github.com/jung-kurt/gofpdf"
)

const (
	marginX = 20.0
	marginY = 20.0
)

// RenderStockReportPDF lays out the stock report: quantity per category
// followed by the low stock table.
func RenderStockReportPDF(report *analytics.ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(0, 10, "STOCK-SPHERE STOCK REPORT")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", report.GeneratedAt.Format("02-Jan-2006 15:04")))
	pdf.Ln(12)

	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Stock by Category")
	pdf.Ln(10)

	table(pdf, []string{"Category", "Quantity"}, []float64{120, 50}, func(row func(cells ...string)) {
		for _, total := range report.CategoryTotals {
			row(tr(total.Category), strconv.Itoa(total.Quantity))
		}
	})
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(220, 20, 60)
	pdf.Cell(0, 8, "Low Stock Alert")
	pdf.Ln(10)
	pdf.SetTextColor(33, 37, 41)

	if len(report.LowStockItems) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(25, 135, 84)
		pdf.Cell(0, 8, views.NoLowStockMessage)
		pdf.Ln(8)
	} else {
		table(pdf, []string{"Item", "Qty", "Supplier", "Status"}, []float64{65, 20, 50, 35}, func(row func(cells ...string)) {
			for _, item := range report.LowStockItems {
				row(tr(item.Name), strconv.Itoa(item.Quantity), tr(item.Supplier), string(item.Status))
			}
		})
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// table draws a header row then lets fill emit body rows. The second column
// holds a quantity and is right aligned.
func table(pdf *gofpdf.Fpdf, headers []string, widths []float64, fill func(row func(cells ...string))) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	fill(func(cells ...string) {
		for i, cell := range cells {
			align := "L"
			if i == 1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 8, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(8)
	})
}
