package domain

// OperatingAssumptions holds the monthly cost structure of the rental.
//
// Percentage convention, applied uniformly across the engine: vacancy is a
// percentage of gross scheduled rent; management and maintenance are
// percentages of effective income (gross minus vacancy loss).
type OperatingAssumptions struct {
	PropertyTaxMonthly float64 `json:"property_tax_monthly"`
	InsuranceMonthly   float64 `json:"insurance_monthly"`
	HOAMonthly         float64 `json:"hoa_monthly,omitempty"`
	OtherMonthly       float64 `json:"other_monthly,omitempty"`
	VacancyPct         float64 `json:"vacancy_pct"`
	MaintenancePct     float64 `json:"maintenance_pct"`
	ManagementPct      float64 `json:"management_pct"`
}

// FixedMonthly is the sum of the flat-dollar monthly costs.
func (o OperatingAssumptions) FixedMonthly() float64 {
	return o.PropertyTaxMonthly + o.InsuranceMonthly + o.HOAMonthly + o.OtherMonthly
}

// ScenarioAssumptions holds the market, tax and hold-period assumptions that
// both scenarios share.
type ScenarioAssumptions struct {
	HoldYears           int     `json:"hold_years"`
	AppreciationRate    float64 `json:"appreciation_rate"`
	RentGrowthRate      float64 `json:"rent_growth_rate,omitempty"`
	StockReturnRate     float64 `json:"stock_return_rate"`
	SellingCostsPct     float64 `json:"selling_costs_pct"`
	CapitalGainsTaxRate float64 `json:"capital_gains_tax_rate"`
	IncomeTaxRate       float64 `json:"income_tax_rate"`
	DiscountRate        float64 `json:"discount_rate"`

	// CashInvested feeds the cash-on-cash denominator (down payment plus
	// closing costs). When zero the engine falls back to current equity
	// (current value minus loan balance).
	CashInvested     float64 `json:"cash_invested,omitempty"`
	CashOnCashPreTax bool    `json:"cash_on_cash_pre_tax,omitempty"`
}

// AnalysisConfig is the fully specified, immutable input for one computation.
// The engine never mutates it and holds no state between calls.
type AnalysisConfig struct {
	Property    PropertySnapshot     `json:"property"`
	Loan        LoanTerms            `json:"loan"`
	Operating   OperatingAssumptions `json:"operating"`
	Assumptions ScenarioAssumptions  `json:"assumptions"`
}
