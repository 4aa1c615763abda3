package service

import (
	"rental-analyzer/domain"
)

// applyIncomeTax fills TaxDue and AfterTaxCashFlow on a projection. Taxable
// income per projection year is NOI minus mortgage interest minus
// straight-line depreciation; the year's tax is spread evenly across its
// months. Losses do not generate a refund and do not carry forward; this is
// a deliberate simplification of the tax model.
func applyIncomeTax(cfg domain.AnalysisConfig, records []domain.MonthlyRecord) {
	basis := cfg.Property.DepreciableBasis()
	annualDep := basis / cfg.Property.RecoveryYears()
	remaining := basis

	for start := 0; start < len(records); start += 12 {
		end := start + 12
		if end > len(records) {
			end = len(records)
		}
		span := records[start:end]

		// Pro-rate depreciation for a partial year and cap it at the
		// remaining basis.
		dep := annualDep * float64(len(span)) / 12.0
		if dep > remaining {
			dep = remaining
		}
		remaining -= dep

		noi, interest := 0.0, 0.0
		for _, r := range span {
			noi += r.NOI
			interest += r.Interest
		}

		tax := 0.0
		if taxable := noi - interest - dep; taxable > 0 {
			tax = taxable * cfg.Assumptions.IncomeTaxRate
		}

		monthlyTax := tax / float64(len(span))
		for j := range span {
			span[j].TaxDue = monthlyTax
			span[j].AfterTaxCashFlow = span[j].PreTaxCashFlow - monthlyTax
		}
	}
}

// AccumulatedDepreciation returns the depreciation claimed over the given
// number of months of the hold, capped at the depreciable basis.
func AccumulatedDepreciation(prop domain.PropertySnapshot, months int) float64 {
	basis := prop.DepreciableBasis()
	if months <= 0 {
		return 0
	}
	dep := basis / prop.RecoveryYears() * float64(months) / 12.0
	if dep > basis {
		return basis
	}
	return dep
}

// SaleAt itemizes a disposition at the given price. Adjusted basis is
// purchase price minus the depreciation accumulated by the sale date; the
// capital-gains rate applies flat to the whole gain, with no separate
// depreciation-recapture rate. Deliberate simplification of the tax model.
func SaleAt(cfg domain.AnalysisConfig, salePrice, accumulatedDep, loanPayoff float64) domain.SaleBreakdown {
	sellingCosts := salePrice * cfg.Assumptions.SellingCostsPct
	adjustedBasis := cfg.Property.PurchasePrice - accumulatedDep
	gain := salePrice - sellingCosts - adjustedBasis
	tax := gain * cfg.Assumptions.CapitalGainsTaxRate

	return domain.SaleBreakdown{
		SalePrice:       salePrice,
		SellingCosts:    sellingCosts,
		LoanPayoff:      loanPayoff,
		AdjustedBasis:   adjustedBasis,
		TaxableGain:     gain,
		CapitalGainsTax: tax,
		NetProceeds:     salePrice - sellingCosts - loanPayoff - tax,
	}
}

// SaleNow itemizes an immediate sale at the current market value. No
// depreciation has been claimed inside the model at the analysis date, so the
// adjusted basis is the purchase price. Unlike the hold-end disposition, the
// taxed gain here is sale price minus adjusted basis: selling costs reduce
// the proceeds but not the gain.
func SaleNow(cfg domain.AnalysisConfig) domain.SaleBreakdown {
	salePrice := cfg.Property.CurrentValue
	sellingCosts := salePrice * cfg.Assumptions.SellingCostsPct
	adjustedBasis := cfg.Property.PurchasePrice
	gain := salePrice - adjustedBasis
	tax := gain * cfg.Assumptions.CapitalGainsTaxRate

	return domain.SaleBreakdown{
		SalePrice:       salePrice,
		SellingCosts:    sellingCosts,
		LoanPayoff:      cfg.Loan.Principal,
		AdjustedBasis:   adjustedBasis,
		TaxableGain:     gain,
		CapitalGainsTax: tax,
		NetProceeds:     salePrice - sellingCosts - cfg.Loan.Principal - tax,
	}
}
