package service

import (
	"math"

	"rental-analyzer/domain"
)

// ProjectCashFlows builds the monthly cash-flow series for the holding
// period. Rent escalates at 12-month boundaries by the rent growth rate.
// Vacancy applies to gross scheduled rent; management and maintenance apply
// to effective income. Debt service comes from the amortization schedule and
// drops to zero once the loan is retired, or is zero throughout when
// unlevered. Income tax is filled in by applyIncomeTax.
func ProjectCashFlows(cfg domain.AnalysisConfig, schedule []domain.PaymentRecord) []domain.MonthlyRecord {
	months := cfg.Assumptions.HoldYears * 12
	baseRent := cfg.Property.TotalMonthlyRent()
	fixed := cfg.Operating.FixedMonthly()

	records := make([]domain.MonthlyRecord, months)
	for i := 0; i < months; i++ {
		year := i / 12
		gross := baseRent * math.Pow(1+cfg.Assumptions.RentGrowthRate, float64(year))
		vacancy := gross * cfg.Operating.VacancyPct
		effective := gross - vacancy
		opex := fixed + effective*(cfg.Operating.ManagementPct+cfg.Operating.MaintenancePct)
		noi := effective - opex

		var interest, principal float64
		if i < len(schedule) {
			interest = schedule[i].Interest
			principal = schedule[i].Principal
		}
		debtService := interest + principal

		records[i] = domain.MonthlyRecord{
			Month:             i,
			GrossIncome:       gross,
			VacancyLoss:       vacancy,
			EffectiveIncome:   effective,
			OperatingExpenses: opex,
			NOI:               noi,
			Interest:          interest,
			Principal:         principal,
			DebtService:       debtService,
			PreTaxCashFlow:    noi - debtService,
		}
	}

	applyIncomeTax(cfg, records)
	return records
}

// yearOneNOI sums NOI over the first twelve projection months.
func yearOneNOI(records []domain.MonthlyRecord) float64 {
	total := 0.0
	for i := 0; i < len(records) && i < 12; i++ {
		total += records[i].NOI
	}
	return total
}
