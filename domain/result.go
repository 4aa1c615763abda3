package domain

// Recommendation labels for ComparisonResult.
const (
	RecommendKeep = "KEEP"
	RecommendSell = "SELL"
)

// Scenario names.
const (
	ScenarioSellNow    = "sell_now"
	ScenarioKeepRental = "keep_rental"
)

// Ratio is a metric that may be mathematically undefined for the given input,
// such as DSCR on an unlevered property. Applicable is false in that case;
// the engine never reports a zero or infinite placeholder instead.
type Ratio struct {
	Value      float64 `json:"value"`
	Applicable bool    `json:"applicable"`
}

// IRRResult carries the root-finder outcome. Converged is false when the
// cash-flow series has no sign change or the solver hit its iteration cap.
type IRRResult struct {
	Rate      float64 `json:"rate"`
	Converged bool    `json:"converged"`
}

// MonthlyRecord is one month of the cash-flow projection, indexed 0 through
// hold_years*12-1. Immutable once produced.
type MonthlyRecord struct {
	Month             int     `json:"month"`
	GrossIncome       float64 `json:"gross_income"`
	VacancyLoss       float64 `json:"vacancy_loss"`
	EffectiveIncome   float64 `json:"effective_income"`
	OperatingExpenses float64 `json:"operating_expenses"`
	NOI               float64 `json:"noi"`
	Interest          float64 `json:"interest"`
	Principal         float64 `json:"principal"`
	DebtService       float64 `json:"debt_service"`
	PreTaxCashFlow    float64 `json:"pre_tax_cash_flow"`
	TaxDue            float64 `json:"tax_due"`
	AfterTaxCashFlow  float64 `json:"after_tax_cash_flow"`
}

// EquityYear tracks the equity build-up side of the keep scenario.
type EquityYear struct {
	Year             int     `json:"year"` // 1-based
	PropertyValue    float64 `json:"property_value"`
	Appreciation     float64 `json:"appreciation"`
	PrincipalPaydown float64 `json:"principal_paydown"`
	RemainingBalance float64 `json:"remaining_balance"`
	NetEquity        float64 `json:"net_equity"`
}

// SaleBreakdown itemizes a disposition, immediate or at hold end.
type SaleBreakdown struct {
	SalePrice       float64 `json:"sale_price"`
	SellingCosts    float64 `json:"selling_costs"`
	LoanPayoff      float64 `json:"loan_payoff"`
	AdjustedBasis   float64 `json:"adjusted_basis"`
	TaxableGain     float64 `json:"taxable_gain"`
	CapitalGainsTax float64 `json:"capital_gains_tax"`
	NetProceeds     float64 `json:"net_proceeds"`
}

// Metrics is the derived metric set for a scenario.
type Metrics struct {
	IRR        IRRResult `json:"irr"`
	NPV        float64   `json:"npv"`
	CapRate    Ratio     `json:"cap_rate"`
	MinDSCR    Ratio     `json:"min_dscr"`
	CashOnCash Ratio     `json:"cash_on_cash"`
}

// ScenarioResult is the outcome of one scenario over the holding period.
// Money fields are rounded to cents, rates to six decimals, so the structure
// survives a JSON round trip losslessly.
type ScenarioResult struct {
	Name                  string         `json:"name"`
	PreTaxCashFlowTotal   float64        `json:"pre_tax_cash_flow_total"`
	AfterTaxCashFlowTotal float64        `json:"after_tax_cash_flow_total"`
	TerminalValue         float64        `json:"terminal_value"`
	TotalReturn           float64        `json:"total_return"`
	Metrics               Metrics        `json:"metrics"`
	Sale                  *SaleBreakdown `json:"sale,omitempty"`
	YearlyEquity          []EquityYear   `json:"yearly_equity,omitempty"`
}

// ComparisonResult holds both scenario outcomes and the recommendation.
// DifferencePct is not applicable when the losing scenario's total is not
// positive. The two break-even fields are solved alongside a full comparison
// and omitted when the scenarios never cross inside the default search range.
type ComparisonResult struct {
	SellNow               ScenarioResult   `json:"sell_now"`
	KeepRental            ScenarioResult   `json:"keep_rental"`
	Recommendation        string           `json:"recommendation"`
	Difference            float64          `json:"difference"`
	DifferencePct         Ratio            `json:"difference_pct"`
	BreakEvenRent         *BreakEvenResult `json:"break_even_rent,omitempty"`
	BreakEvenAppreciation *BreakEvenResult `json:"break_even_appreciation,omitempty"`
	Explanation           string           `json:"explanation,omitempty"`
}

// SensitivityPoint is one grid point of a sensitivity sweep.
type SensitivityPoint struct {
	Level  float64          `json:"level"`
	Result ComparisonResult `json:"result"`
}

// BreakEvenResult is the crossover found by the break-even solver.
type BreakEvenResult struct {
	Variable   string  `json:"variable"`
	Value      float64 `json:"value"`
	Difference float64 `json:"difference"` // keep minus sell at the solution
	Iterations int     `json:"iterations"`
}

// VacancyStressResult reports the cash impact of an extended vacancy window.
type VacancyStressResult struct {
	StartMonth      int     `json:"start_month"` // 0-based projection month
	VacantMonths    int     `json:"vacant_months"`
	LostRent        float64 `json:"lost_rent"`
	MonthlyCarrying float64 `json:"monthly_carrying_cost"`
	MaxShortfall    float64 `json:"max_shortfall"`
	MonthsNegative  int     `json:"months_negative"`
	EndingBalance   float64 `json:"ending_cash_balance"`
}

// ValueShockScenario reports equity and financing impact of a price shock.
type ValueShockScenario struct {
	ShockPct         float64 `json:"shock_pct"` // e.g. -0.20
	ShockedValue     float64 `json:"shocked_value"`
	EquityLoss       float64 `json:"equity_loss"`
	RemainingEquity  float64 `json:"remaining_equity"`
	LoanToValue      float64 `json:"loan_to_value"`
	Underwater       bool    `json:"underwater"`
	UnderwaterAmount float64 `json:"underwater_amount"`
	CanRefinance     bool    `json:"can_refinance"`
}
