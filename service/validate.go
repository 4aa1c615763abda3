package service

import (
	"fmt"

	"rental-analyzer/domain"
)

// ValidateConfig checks the full configuration and returns every field-level
// problem found, not just the first. A nil return means the configuration is
// computable; validation always runs before any calculation.
func ValidateConfig(cfg domain.AnalysisConfig) domain.ValidationErrors {
	var errs domain.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	p := cfg.Property
	if p.PurchasePrice <= 0 {
		add("property.purchase_price", "must be positive")
	}
	if p.PurchasePrice > MaxPropertyValue {
		add("property.purchase_price", fmt.Sprintf("exceeds maximum of %.0f", float64(MaxPropertyValue)))
	}
	if p.CurrentValue <= 0 {
		add("property.current_value", "must be positive")
	}
	if p.CurrentValue > MaxPropertyValue {
		add("property.current_value", fmt.Sprintf("exceeds maximum of %.0f", float64(MaxPropertyValue)))
	}
	if p.LandValue < 0 {
		add("property.land_value", "cannot be negative")
	}
	if p.LandValue > p.PurchasePrice {
		add("property.land_value", "cannot exceed purchase price")
	}
	if len(p.Units) == 0 {
		add("property.units", "at least one unit is required")
	}
	if len(p.Units) > MaxUnits {
		add("property.units", fmt.Sprintf("exceeds maximum of %d units", MaxUnits))
	}
	for i, u := range p.Units {
		if u.MonthlyRent < 0 {
			add(fmt.Sprintf("property.units[%d].monthly_rent", i), "cannot be negative")
		}
	}
	if p.Class != "" && p.Class != domain.ClassResidential && p.Class != domain.ClassCommercial {
		add("property.class", "must be residential or commercial")
	}

	l := cfg.Loan
	if l.Principal < 0 {
		add("loan.principal", "cannot be negative")
	}
	if l.Principal > MaxLoanAmount {
		add("loan.principal", fmt.Sprintf("exceeds maximum of %.0f", float64(MaxLoanAmount)))
	}
	if l.AnnualRate < 0 || l.AnnualRate > 1 {
		add("loan.annual_rate", "must be a decimal between 0 and 1")
	}
	if l.Principal > 0 {
		if l.TermMonths <= 0 {
			add("loan.term_months", "must be positive")
		}
		if l.TermMonths > MaxTermMonths {
			add("loan.term_months", fmt.Sprintf("exceeds maximum of %d months", MaxTermMonths))
		}
		if l.InterestOnlyMonths < 0 {
			add("loan.interest_only_months", "cannot be negative")
		}
		if l.TermMonths > 0 && l.InterestOnlyMonths >= l.TermMonths {
			add("loan.interest_only_months", "must be less than the term")
		}
	}

	o := cfg.Operating
	checkMoney := func(field string, v float64) {
		if v < 0 {
			add(field, "cannot be negative")
		}
	}
	checkPct := func(field string, v float64) {
		if v < 0 || v > 1 {
			add(field, "must be a decimal between 0 and 1")
		}
	}
	checkMoney("operating.property_tax_monthly", o.PropertyTaxMonthly)
	checkMoney("operating.insurance_monthly", o.InsuranceMonthly)
	checkMoney("operating.hoa_monthly", o.HOAMonthly)
	checkMoney("operating.other_monthly", o.OtherMonthly)
	checkPct("operating.vacancy_pct", o.VacancyPct)
	checkPct("operating.maintenance_pct", o.MaintenancePct)
	checkPct("operating.management_pct", o.ManagementPct)

	a := cfg.Assumptions
	if a.HoldYears <= 0 {
		add("assumptions.hold_years", "must be positive")
	}
	if a.HoldYears > MaxHoldYears {
		add("assumptions.hold_years", fmt.Sprintf("exceeds maximum of %d years", MaxHoldYears))
	}
	checkPct("assumptions.selling_costs_pct", a.SellingCostsPct)
	checkPct("assumptions.capital_gains_tax_rate", a.CapitalGainsTaxRate)
	checkPct("assumptions.income_tax_rate", a.IncomeTaxRate)
	checkRate := func(field string, v float64) {
		if v <= -1 {
			add(field, "cannot be -100% or lower")
		}
	}
	checkRate("assumptions.appreciation_rate", a.AppreciationRate)
	checkRate("assumptions.rent_growth_rate", a.RentGrowthRate)
	checkRate("assumptions.stock_return_rate", a.StockReturnRate)
	checkRate("assumptions.discount_rate", a.DiscountRate)
	checkMoney("assumptions.cash_invested", a.CashInvested)

	if len(errs) == 0 {
		return nil
	}
	return errs
}
