package pdf

import (
	"fmt"
	"testing"
	"time"

	"taxinvoice-backend/billing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeller() Seller {
	return Seller{
		Name:        "Sharma Steel Traders",
		GstNo:       "27AAPFU0939F1ZV",
		Address:     "14 Industrial Estate, Pune",
		State:       "Maharashtra",
		StateCode:   "27",
		BankName:    "State Bank of India",
		BankAccount: "38012345678",
		BankIFSC:    "SBIN0001234",
	}
}

func testBuyer() Buyer {
	return Buyer{
		Name:      "Patel Construction Co",
		GstNo:     "24AABCP1234Q1Z5",
		Address:   "Ring Road, Surat",
		State:     "Gujarat",
		StateCode: "24",
	}
}

func testMeta() Meta {
	return Meta{
		InvoiceNumber: "INV/2025-26/X4J2",
		InvoiceDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		PaymentTerms:  "30days",
		TransportMode: "road",
		VehicleNo:     "MH12AB1234",
	}
}

func totalsWithLines(t *testing.T, n int) billing.Totals {
	t.Helper()
	rate := decimal.NewFromInt(18)
	lines := make([]billing.Line, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, billing.Line{
			Name:     fmt.Sprintf("Steel Bars batch %d", i+1),
			HSN:      "7214",
			Quantity: i + 1,
			Unit:     "MT",
			Rate:     decimal.NewFromInt(5500),
			GSTRate:  &rate,
		})
	}
	totals, err := billing.ComputeTotals(lines, rate, decimal.Zero)
	require.NoError(t, err)
	return totals
}

func TestFilename(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"INV/2025-26/X4J2", "Invoice_INV_2025-26_X4J2.pdf"},
		{"PLAIN-001", "Invoice_PLAIN-001.pdf"},
		{"A/B/C/D", "Invoice_A_B_C_D.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.number))
	}
}

func TestColumnFractionsCoverFullWidth(t *testing.T) {
	sum := 0.0
	for _, f := range columnFractions {
		sum += f
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(testSeller())

	out, err := r.Render(testMeta(), testBuyer(), totalsWithLines(t, 3))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderManyLinesPaginates(t *testing.T) {
	r := NewRenderer(testSeller())

	small, err := r.Render(testMeta(), testBuyer(), totalsWithLines(t, 2))
	require.NoError(t, err)
	large, err := r.Render(testMeta(), testBuyer(), totalsWithLines(t, 80))
	require.NoError(t, err)

	assert.Greater(t, len(large), len(small), "an 80-line invoice must produce a longer document")
}

func TestRenderEmptyDraftTotals(t *testing.T) {
	// Zero-line totals still render a valid (header-only) document
	r := NewRenderer(testSeller())
	totals, err := billing.ComputeTotals(nil, decimal.NewFromInt(18), decimal.Zero)
	require.NoError(t, err)

	out, err := r.Render(testMeta(), testBuyer(), totals)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderBlankFieldsFallBackToNA(t *testing.T) {
	r := NewRenderer(Seller{})
	meta := testMeta()
	meta.VehicleNo = ""

	out, err := r.Render(meta, Buyer{}, totalsWithLines(t, 1))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
