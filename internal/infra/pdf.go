package infra

// pdf.go — Z-report PDF generation using go-pdf/fpdf.
// Renders an A5 end-of-shift reconciliation sheet with:
//   - Business name header and shift window
//   - Sales block (orders, gross, discounts, tax, refunds, net, average check)
//   - Payment method breakdown
//   - Cash drawer reconciliation (float, expected, counted, difference)
//
// The output file is saved to storagePath/zreport_{shiftID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tillpos/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateShiftReportPDF renders the frozen summary of a closed Shift.
// Returns the absolute path to the generated file.
func GenerateShiftReportPDF(shift *model.Shift, businessName, storagePath string) (string, error) {
	if shift.Status != model.ShiftClosed {
		return "", fmt.Errorf("pdf: shift %s is not closed", shift.ID)
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("zreport_%s.pdf", shift.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, businessName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "End-of-Shift Report (Z)", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Opened:  "+shift.OpenedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if shift.ClosedAt != nil {
		pdf.CellFormat(contentW, 4, "Closed:  "+shift.ClosedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	labelW := contentW * 0.62
	valueW := contentW * 0.38

	row := func(label string, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 5, value, "", 1, "R", false, 0, "")
	}
	money := func(d *decimal.Decimal) string {
		if d == nil {
			return "$0.00"
		}
		return "$" + d.StringFixed(2)
	}

	// ── Sales ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Sales", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	totalOrders := 0
	if shift.TotalOrders != nil {
		totalOrders = *shift.TotalOrders
	}
	row("Completed orders", fmt.Sprintf("%d", totalOrders), false)
	row("Gross sales", money(shift.GrossSales), false)
	row("Discounts", money(shift.TotalDiscount), false)
	row("Tax collected", money(shift.TotalTax), false)
	row("Refunds", money(shift.TotalRefunds), false)
	row("Net sales", money(shift.NetSales), true)
	if totalOrders > 0 && shift.NetSales != nil {
		avg := shift.NetSales.Div(decimal.NewFromInt(int64(totalOrders))).Round(2)
		row("Average check", "$"+avg.StringFixed(2), false)
	}
	pdf.Ln(3)

	// ── Payment breakdown ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Payments", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	if shift.PaymentBreakdown != nil {
		methods := make([]string, 0, len(*shift.PaymentBreakdown))
		for m := range *shift.PaymentBreakdown {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		for _, m := range methods {
			amount := (*shift.PaymentBreakdown)[m]
			row(m, "$"+amount.StringFixed(2), false)
		}
	}
	pdf.Ln(3)

	// ── Cash reconciliation ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Cash Drawer", "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	row("Opening float", "$"+shift.StartCash.StringFixed(2), false)
	row("Expected cash", money(shift.ExpectedCash), false)
	row("Counted cash", money(shift.EndCash), false)
	row("Difference", money(shift.CashDifference), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
