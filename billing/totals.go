// Package billing computes GST invoice totals: per-line taxable amounts,
// the HSN-wise tax summary, the rounded grand total and the running balance.
// All arithmetic uses shopspring/decimal; nothing here touches the database.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NoHSN is the summary bucket for lines without an HSN/SAC code.
const NoHSN = "N/A"

var hundred = decimal.NewFromInt(100)

// Line is one invoice line resolved to its rates at add time.
// Discount is a percentage of the line value (0-100), never an absolute
// amount. A nil GSTRate means the invoice-level fallback rate applies.
type Line struct {
	Name     string
	HSN      string
	Quantity int
	Unit     string
	Rate     decimal.Decimal
	Discount decimal.Decimal
	GSTRate  *decimal.Decimal
}

// LineTotal is a Line with its computed amounts.
type LineTotal struct {
	Line
	EffectiveGSTRate decimal.Decimal
	TaxableAmount    decimal.Decimal
	TaxAmount        decimal.Decimal
}

// HSNSummaryRow aggregates taxable value and tax across all lines sharing
// an (HSN code, GST rate) pair. Keying by the pair keeps lines with the same
// code but different rates in separate rows instead of blending rates.
type HSNSummaryRow struct {
	HSN          string
	GSTRate      decimal.Decimal
	TaxableValue decimal.Decimal
	TaxAmount    decimal.Decimal
}

// Totals is the full aggregation result. Subtotal and TotalTax carry exact
// values; GrandTotal is rounded half-up to 2 decimals and RoundOff is the
// signed difference shown as "Round Off" on the invoice.
type Totals struct {
	Lines           []LineTotal
	Subtotal        decimal.Decimal
	HSNSummary      []HSNSummaryRow
	TotalTax        decimal.Decimal
	GrandTotal      decimal.Decimal
	RoundOff        decimal.Decimal
	PreviousBalance decimal.Decimal
	RunningBalance  decimal.Decimal
}

// ComputeTotals derives invoice totals from lines. It is a pure function:
// identical input always yields identical output, and an empty line slice
// yields zero-valued totals rather than an error (the caller decides whether
// an empty invoice is acceptable).
func ComputeTotals(lines []Line, fallbackGSTRate, previousBalance decimal.Decimal) (Totals, error) {
	if fallbackGSTRate.IsNegative() || fallbackGSTRate.GreaterThan(hundred) {
		return Totals{}, &ValidationError{Err: ErrInvalidRate, Details: "fallback rate " + fallbackGSTRate.String()}
	}

	totals := Totals{
		Subtotal:        decimal.Zero,
		TotalTax:        decimal.Zero,
		PreviousBalance: previousBalance,
	}

	bucketIndex := map[string]int{}

	for i, line := range lines {
		if err := validateLine(i, line); err != nil {
			return Totals{}, err
		}

		rate := fallbackGSTRate
		if line.GSTRate != nil {
			rate = *line.GSTRate
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		factor := decimal.NewFromInt(1).Sub(line.Discount.Div(hundred))
		taxable := qty.Mul(line.Rate).Mul(factor)
		tax := taxable.Mul(rate).Div(hundred)

		totals.Lines = append(totals.Lines, LineTotal{
			Line:             line,
			EffectiveGSTRate: rate,
			TaxableAmount:    taxable,
			TaxAmount:        tax,
		})
		totals.Subtotal = totals.Subtotal.Add(taxable)
		totals.TotalTax = totals.TotalTax.Add(tax)

		code := line.HSN
		if code == "" {
			code = NoHSN
		}
		key := code + "|" + rate.String()
		if idx, ok := bucketIndex[key]; ok {
			totals.HSNSummary[idx].TaxableValue = totals.HSNSummary[idx].TaxableValue.Add(taxable)
			totals.HSNSummary[idx].TaxAmount = totals.HSNSummary[idx].TaxAmount.Add(tax)
		} else {
			bucketIndex[key] = len(totals.HSNSummary)
			totals.HSNSummary = append(totals.HSNSummary, HSNSummaryRow{
				HSN:          code,
				GSTRate:      rate,
				TaxableValue: taxable,
				TaxAmount:    tax,
			})
		}
	}

	exact := totals.Subtotal.Add(totals.TotalTax)
	totals.GrandTotal = exact.Round(2)
	totals.RoundOff = totals.GrandTotal.Sub(exact)
	totals.RunningBalance = previousBalance.Add(totals.GrandTotal)

	return totals, nil
}

func validateLine(i int, line Line) error {
	switch {
	case line.Quantity <= 0:
		return &ValidationError{Err: ErrInvalidLine, Details: fmt.Sprintf("line %d: quantity must be positive", i+1)}
	case line.Rate.IsNegative():
		return &ValidationError{Err: ErrInvalidLine, Details: fmt.Sprintf("line %d: rate cannot be negative", i+1)}
	case line.Discount.IsNegative() || line.Discount.GreaterThan(hundred):
		return &ValidationError{Err: ErrInvalidLine, Details: fmt.Sprintf("line %d: discount must be between 0 and 100", i+1)}
	case line.GSTRate != nil && (line.GSTRate.IsNegative() || line.GSTRate.GreaterThan(hundred)):
		return &ValidationError{Err: ErrInvalidLine, Details: fmt.Sprintf("line %d: gst rate must be between 0 and 100", i+1)}
	}
	return nil
}
