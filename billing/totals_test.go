package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeTotalsSingleItem(t *testing.T) {
	// One MT of steel at 5500 with 18% GST
	lines := []Line{
		{Name: "Steel Bars (10mm)", HSN: "7214", Quantity: 1, Unit: "MT", Rate: dec("5500"), Discount: decimal.Zero, GSTRate: decPtr("18")},
	}

	totals, err := ComputeTotals(lines, dec("18"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("5500")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TotalTax.Equal(dec("990")), "total tax = %s", totals.TotalTax)
	assert.True(t, totals.GrandTotal.Equal(dec("6490")), "grand total = %s", totals.GrandTotal)
	assert.Equal(t, "6490.00", totals.GrandTotal.StringFixed(2))
	assert.True(t, totals.RoundOff.IsZero())

	require.Len(t, totals.Lines, 1)
	assert.True(t, totals.Lines[0].TaxableAmount.Equal(dec("5500")))
	assert.True(t, totals.Lines[0].EffectiveGSTRate.Equal(dec("18")))
}

func TestComputeTotalsZeroDiscountEqualsRateTimesQty(t *testing.T) {
	tests := []struct {
		name string
		qty  int
		rate string
		want string
	}{
		{"unit quantity", 1, "100", "100"},
		{"bulk", 37, "249.50", "9231.50"},
		{"free item", 5, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []Line{{Name: "x", Quantity: tt.qty, Rate: dec(tt.rate), Discount: decimal.Zero}}
			totals, err := ComputeTotals(lines, dec("18"), decimal.Zero)
			require.NoError(t, err)
			assert.True(t, totals.Subtotal.Equal(dec(tt.want)), "subtotal = %s, want %s", totals.Subtotal, tt.want)
		})
	}
}

func TestComputeTotalsDiscountIsPercentage(t *testing.T) {
	// 10% off 2 x 500 -> taxable 900
	lines := []Line{{Name: "x", Quantity: 2, Rate: dec("500"), Discount: dec("10")}}
	totals, err := ComputeTotals(lines, dec("0"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(dec("900")))
}

func TestComputeTotalsHSNSummaryBuckets(t *testing.T) {
	// HSN 7214 at 18% taxable 5500, blank HSN at 12% taxable 1000
	lines := []Line{
		{Name: "Steel Bars", HSN: "7214", Quantity: 1, Rate: dec("5500"), GSTRate: decPtr("18")},
		{Name: "Binding Wire", HSN: "", Quantity: 1, Rate: dec("1000"), GSTRate: decPtr("12")},
	}

	totals, err := ComputeTotals(lines, dec("18"), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, totals.HSNSummary, 2)
	assert.Equal(t, "7214", totals.HSNSummary[0].HSN)
	assert.True(t, totals.HSNSummary[0].TaxAmount.Equal(dec("990")))
	assert.Equal(t, NoHSN, totals.HSNSummary[1].HSN)
	assert.True(t, totals.HSNSummary[1].TaxAmount.Equal(dec("120")))
	assert.True(t, totals.TotalTax.Equal(dec("1110")))
}

func TestComputeTotalsSameHSNDifferentRates(t *testing.T) {
	// Same code, different rates: two rows, no rate blending
	lines := []Line{
		{Name: "a", HSN: "7214", Quantity: 1, Rate: dec("1000"), GSTRate: decPtr("18")},
		{Name: "b", HSN: "7214", Quantity: 1, Rate: dec("1000"), GSTRate: decPtr("12")},
		{Name: "c", HSN: "7214", Quantity: 1, Rate: dec("500"), GSTRate: decPtr("18")},
	}

	totals, err := ComputeTotals(lines, dec("18"), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, totals.HSNSummary, 2)
	assert.True(t, totals.HSNSummary[0].GSTRate.Equal(dec("18")))
	assert.True(t, totals.HSNSummary[0].TaxableValue.Equal(dec("1500")))
	assert.True(t, totals.HSNSummary[1].GSTRate.Equal(dec("12")))
	assert.True(t, totals.HSNSummary[1].TaxableValue.Equal(dec("1000")))
}

func TestComputeTotalsHSNSummaryReconciles(t *testing.T) {
	lines := []Line{
		{Name: "a", HSN: "7214", Quantity: 3, Rate: dec("1234.56"), Discount: dec("2.5"), GSTRate: decPtr("18")},
		{Name: "b", HSN: "7308", Quantity: 7, Rate: dec("99.99"), GSTRate: decPtr("12")},
		{Name: "c", HSN: "", Quantity: 1, Rate: dec("450.25"), Discount: dec("10")},
		{Name: "d", HSN: "7214", Quantity: 2, Rate: dec("800"), GSTRate: decPtr("18")},
	}

	totals, err := ComputeTotals(lines, dec("5"), decimal.Zero)
	require.NoError(t, err)

	taxable := decimal.Zero
	tax := decimal.Zero
	for _, row := range totals.HSNSummary {
		taxable = taxable.Add(row.TaxableValue)
		tax = tax.Add(row.TaxAmount)
	}
	assert.True(t, taxable.Equal(totals.Subtotal), "bucket taxable sum %s != subtotal %s", taxable, totals.Subtotal)
	assert.True(t, tax.Equal(totals.TotalTax), "bucket tax sum %s != total tax %s", tax, totals.TotalTax)
}

func TestComputeTotalsOrderIndependentSubtotal(t *testing.T) {
	lines := []Line{
		{Name: "a", Quantity: 3, Rate: dec("19.99")},
		{Name: "b", Quantity: 1, Rate: dec("5500")},
		{Name: "c", Quantity: 12, Rate: dec("0.35"), Discount: dec("50")},
	}
	reversed := []Line{lines[2], lines[1], lines[0]}

	first, err := ComputeTotals(lines, dec("18"), decimal.Zero)
	require.NoError(t, err)
	second, err := ComputeTotals(reversed, dec("18"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestComputeTotalsRoundHalfUp(t *testing.T) {
	// subtotal + tax = 123.455 must round to 123.46
	lines := []Line{{Name: "x", Quantity: 1, Rate: dec("123.455"), GSTRate: decPtr("0")}}

	totals, err := ComputeTotals(lines, dec("0"), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "123.46", totals.GrandTotal.StringFixed(2))
	assert.Equal(t, "0.01", totals.RoundOff.StringFixed(2))
}

func TestComputeTotalsRoundOffNegative(t *testing.T) {
	lines := []Line{{Name: "x", Quantity: 1, Rate: dec("100.124"), GSTRate: decPtr("0")}}

	totals, err := ComputeTotals(lines, dec("0"), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "100.12", totals.GrandTotal.StringFixed(2))
	assert.True(t, totals.RoundOff.Equal(dec("-0.004")), "round off = %s", totals.RoundOff)
	assert.True(t, totals.RoundOff.IsNegative())
}

func TestComputeTotalsFallbackRate(t *testing.T) {
	lines := []Line{{Name: "x", Quantity: 1, Rate: dec("1000")}}

	totals, err := ComputeTotals(lines, dec("12"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.TotalTax.Equal(dec("120")))
	assert.True(t, totals.Lines[0].EffectiveGSTRate.Equal(dec("12")))
}

func TestComputeTotalsRunningBalance(t *testing.T) {
	lines := []Line{{Name: "x", Quantity: 1, Rate: dec("5500"), GSTRate: decPtr("18")}}

	totals, err := ComputeTotals(lines, dec("18"), dec("1250.50"))
	require.NoError(t, err)

	assert.True(t, totals.PreviousBalance.Equal(dec("1250.50")))
	assert.True(t, totals.RunningBalance.Equal(dec("7740.50")))
}

func TestComputeTotalsEmptyInvoice(t *testing.T) {
	totals, err := ComputeTotals(nil, dec("18"), decimal.Zero)
	require.NoError(t, err)

	assert.Empty(t, totals.Lines)
	assert.Empty(t, totals.HSNSummary)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.RunningBalance.IsZero())
}

func TestComputeTotalsValidation(t *testing.T) {
	tests := []struct {
		name string
		line Line
	}{
		{"zero quantity", Line{Quantity: 0, Rate: dec("10")}},
		{"negative quantity", Line{Quantity: -2, Rate: dec("10")}},
		{"negative rate", Line{Quantity: 1, Rate: dec("-1")}},
		{"negative discount", Line{Quantity: 1, Rate: dec("10"), Discount: dec("-5")}},
		{"discount over 100", Line{Quantity: 1, Rate: dec("10"), Discount: dec("101")}},
		{"gst rate over 100", Line{Quantity: 1, Rate: dec("10"), GSTRate: decPtr("101")}},
		{"negative gst rate", Line{Quantity: 1, Rate: dec("10"), GSTRate: decPtr("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals([]Line{tt.line}, dec("18"), decimal.Zero)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLine)
		})
	}
}

func TestComputeTotalsBadFallbackRate(t *testing.T) {
	_, err := ComputeTotals(nil, dec("120"), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestComputeTotalsDeterministic(t *testing.T) {
	lines := []Line{
		{Name: "a", HSN: "7214", Quantity: 3, Rate: dec("1234.56"), Discount: dec("2.5"), GSTRate: decPtr("18")},
		{Name: "b", HSN: "", Quantity: 1, Rate: dec("450.25"), Discount: dec("10")},
	}

	first, err := ComputeTotals(lines, dec("5"), dec("99"))
	require.NoError(t, err)
	second, err := ComputeTotals(lines, dec("5"), dec("99"))
	require.NoError(t, err)

	assert.Equal(t, first.GrandTotal.String(), second.GrandTotal.String())
	assert.Equal(t, len(first.HSNSummary), len(second.HSNSummary))
	for i := range first.HSNSummary {
		assert.Equal(t, first.HSNSummary[i].HSN, second.HSNSummary[i].HSN)
		assert.Equal(t, first.HSNSummary[i].TaxAmount.String(), second.HSNSummary[i].TaxAmount.String())
	}
}
