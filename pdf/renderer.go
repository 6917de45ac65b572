// Package pdf renders a draft invoice and its computed totals into a
// paginated A4 tax-invoice document. Layout is a single-pass transform:
// fixed column proportions, a table header repeated on every page, and all
// amounts formatted to exactly 2 decimal places.
package pdf

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	"taxinvoice-backend/billing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ErrEmptyDocument is returned when generation produced zero bytes.
var ErrEmptyDocument = errors.New("generated PDF is empty")

// Seller is the issuing business printed in the invoice header and footer.
type Seller struct {
	Name        string
	GstNo       string
	Address     string
	State       string
	StateCode   string
	BankName    string
	BankAccount string
	BankIFSC    string
}

// Buyer is the selected company the invoice is billed to.
type Buyer struct {
	Name      string
	GstNo     string
	Address   string
	State     string
	StateCode string
}

// Meta carries the invoice header fields and pass-through options.
type Meta struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	PaymentTerms  string
	Notes         string
	TransportMode string
	VehicleNo     string
}

// Column width proportions of the printable width. They never change across
// pages, so a multi-page table keeps identical columns throughout.
var columnFractions = [7]float64{0.05, 0.45, 0.10, 0.12, 0.10, 0.05, 0.13}

var columnTitles = [7]string{"Sl", "Description", "HSN", "Qty", "Rate", "Unit", "Amount"}

// right-aligned numeric columns
var columnAligns = [7]string{"C", "L", "C", "R", "R", "C", "R"}

const (
	pageMargin = 10.0
	rowHeight  = 7.0
)

type Renderer struct {
	seller Seller
}

func NewRenderer(seller Seller) *Renderer {
	return &Renderer{seller: seller}
}

// Filename builds the download name for an invoice number, replacing the
// slashes of the human-readable number (e.g. INV/2025-26/X4J2) so the result
// is a safe single path component.
func Filename(invoiceNumber string) string {
	return "Invoice_" + strings.ReplaceAll(invoiceNumber, "/", "_") + ".pdf"
}

// Render lays out the invoice and returns the finished document bytes.
func (r *Renderer) Render(meta Meta, buyer Buyer, totals billing.Totals) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	printable := pageW - 2*pageMargin
	breakY := pageH - 40 // keep room for the footer band

	widths := make([]float64, len(columnFractions))
	for i, f := range columnFractions {
		widths[i] = printable * f
	}

	r.drawHeader(doc, meta, buyer)
	r.drawTableHeader(doc, widths)

	for i, line := range totals.Lines {
		if doc.GetY()+rowHeight > breakY {
			doc.AddPage()
			r.drawTableHeader(doc, widths)
		}
		cells := [7]string{
			strconv.Itoa(i + 1),
			orNA(line.Name),
			orNA(line.HSN),
			strconv.Itoa(line.Quantity),
			line.Rate.StringFixed(2),
			orNA(line.Unit),
			line.TaxableAmount.StringFixed(2),
		}
		doc.SetFont("Arial", "", 9)
		for c, text := range cells {
			doc.CellFormat(widths[c], rowHeight, text, "1", 0, columnAligns[c], false, 0, "")
		}
		doc.Ln(-1)
	}

	if doc.GetY()+float64(len(totals.HSNSummary)+10)*rowHeight > breakY {
		doc.AddPage()
	}
	r.drawTotals(doc, printable, totals)
	r.drawSummaryAndFooter(doc, printable, meta, totals)

	if doc.Err() {
		return nil, doc.Error()
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyDocument
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(doc *gofpdf.Fpdf, meta Meta, buyer Buyer) {
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	doc.Ln(2)

	// Seller block on the left, invoice meta on the right
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(95, 5, orNA(r.seller.Name), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Invoice No: "+orNA(meta.InvoiceNumber), "", 1, "R", false, 0, "")

	doc.SetFont("Arial", "", 9)
	doc.CellFormat(95, 5, "GSTIN: "+orNA(r.seller.GstNo), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Date: "+meta.InvoiceDate.Format("02/01/2006"), "", 1, "R", false, 0, "")
	doc.CellFormat(95, 5, orNA(r.seller.Address), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Due Date: "+meta.DueDate.Format("02/01/2006"), "", 1, "R", false, 0, "")
	doc.CellFormat(95, 5, "State: "+orNA(r.seller.State)+" ("+orNA(r.seller.StateCode)+")", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Terms: "+orNA(meta.PaymentTerms), "", 1, "R", false, 0, "")
	doc.Ln(3)

	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(0, 5, "Bill To:", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 9)
	doc.CellFormat(95, 5, orNA(buyer.Name), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Transport: "+orNA(meta.TransportMode), "", 1, "R", false, 0, "")
	doc.CellFormat(95, 5, "GSTIN: "+orNA(buyer.GstNo), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "Vehicle No: "+orNA(meta.VehicleNo), "", 1, "R", false, 0, "")
	doc.CellFormat(95, 5, orNA(buyer.Address), "", 1, "L", false, 0, "")
	doc.CellFormat(95, 5, "State: "+orNA(buyer.State)+" ("+orNA(buyer.StateCode)+")", "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func (r *Renderer) drawTableHeader(doc *gofpdf.Fpdf, widths []float64) {
	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(230, 230, 230)
	for c, title := range columnTitles {
		doc.CellFormat(widths[c], rowHeight, title, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
}

func (r *Renderer) drawTotals(doc *gofpdf.Fpdf, printable float64, totals billing.Totals) {
	labelW := printable * 0.87
	valueW := printable * 0.13

	row := func(label string, value decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Arial", style, 9)
		doc.CellFormat(labelW, rowHeight, label, "1", 0, "R", false, 0, "")
		doc.CellFormat(valueW, rowHeight, value.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	row("Subtotal", totals.Subtotal, false)
	row("Total Tax", totals.TotalTax, false)
	row("Round Off", totals.RoundOff, false)
	row("Grand Total", totals.GrandTotal, true)
	row("Previous Balance", totals.PreviousBalance, false)
	row("Running Balance", totals.RunningBalance, true)
	doc.Ln(4)
}

func (r *Renderer) drawSummaryAndFooter(doc *gofpdf.Fpdf, printable float64, meta Meta, totals billing.Totals) {
	// HSN-wise IGST summary
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(0, 6, "HSN/SAC Tax Summary", "", 1, "L", false, 0, "")

	sumW := []float64{printable * 0.25, printable * 0.25, printable * 0.25, printable * 0.25}
	headers := []string{"HSN/SAC", "Taxable Value", "IGST Rate", "IGST Amount"}
	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(230, 230, 230)
	for c, h := range headers {
		doc.CellFormat(sumW[c], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 9)
	for _, bucket := range totals.HSNSummary {
		doc.CellFormat(sumW[0], rowHeight, bucket.HSN, "1", 0, "C", false, 0, "")
		doc.CellFormat(sumW[1], rowHeight, bucket.TaxableValue.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(sumW[2], rowHeight, bucket.GSTRate.StringFixed(2)+"%", "1", 0, "R", false, 0, "")
		doc.CellFormat(sumW[3], rowHeight, bucket.TaxAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	if meta.Notes != "" {
		doc.SetFont("Arial", "I", 9)
		doc.MultiCell(0, 5, "Notes: "+meta.Notes, "", "L", false)
		doc.Ln(2)
	}

	doc.SetFont("Arial", "", 9)
	doc.CellFormat(0, 5, "Bank: "+orNA(r.seller.BankName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "A/C No: "+orNA(r.seller.BankAccount)+"    IFSC: "+orNA(r.seller.BankIFSC), "", 1, "L", false, 0, "")
	doc.Ln(8)
	doc.SetFont("Arial", "B", 9)
	doc.CellFormat(0, 5, "For "+orNA(r.seller.Name), "", 1, "R", false, 0, "")
	doc.Ln(8)
	doc.SetFont("Arial", "", 9)
	doc.CellFormat(0, 5, "Authorised Signatory", "", 1, "R", false, 0, "")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return billing.NoHSN
	}
	return s
}
