package domain

// LoanTerms describes the mortgage as of the analysis date. Principal is the
// outstanding balance and TermMonths the remaining term, so a seasoned loan is
// expressed by its current position rather than its original note. A zero
// Principal means the property is unlevered.
type LoanTerms struct {
	Principal          float64 `json:"principal"`
	AnnualRate         float64 `json:"annual_rate"` // nominal, decimal (0.065 = 6.5%)
	TermMonths         int     `json:"term_months"`
	InterestOnlyMonths int     `json:"interest_only_months,omitempty"`
	OriginationDate    string  `json:"origination_date,omitempty"`
}

// Unlevered reports whether there is no debt to service.
func (l LoanTerms) Unlevered() bool {
	return l.Principal <= 0
}

// PaymentRecord is one month of an amortization schedule.
type PaymentRecord struct {
	Month     int     `json:"month"` // 1-based
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}
