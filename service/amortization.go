package service

import (
	"math"

	"rental-analyzer/domain"
)

// BuildSchedule produces the full monthly payment schedule for the loan.
// During an interest-only period the payment covers interest alone and the
// balance is unchanged; the remaining months pay a level annuity that retires
// the balance by term end. A zero rate degenerates to straight principal.
// Returns nil for an unlevered position.
func BuildSchedule(loan domain.LoanTerms) []domain.PaymentRecord {
	if loan.Unlevered() || loan.TermMonths <= 0 {
		return nil
	}

	t := loan.TermMonths
	io := loan.InterestOnlyMonths
	m := loan.AnnualRate / 12.0
	balance := loan.Principal

	var payment float64
	if m == 0 {
		payment = loan.Principal / float64(t-io)
	} else {
		n := float64(t - io)
		payment = loan.Principal * m / (1 - math.Pow(1+m, -n))
	}

	schedule := make([]domain.PaymentRecord, 0, t)

	for month := 1; month <= t; month++ {
		interest := balance * m

		var principal float64
		switch {
		case month <= io:
			principal = 0
		case month == t:
			// Absorb rounding drift so the balance lands on zero.
			principal = balance
		case m == 0:
			principal = payment
		default:
			principal = payment - interest
		}

		if principal > balance {
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, domain.PaymentRecord{
			Month:     month,
			Payment:   interest + principal,
			Interest:  interest,
			Principal: principal,
			Balance:   balance,
		})
	}

	return schedule
}

// BalanceAfter returns the remaining balance once the given number of
// payments have been made. Past the end of the schedule the loan is retired.
func BalanceAfter(loan domain.LoanTerms, schedule []domain.PaymentRecord, months int) float64 {
	if loan.Unlevered() {
		return 0
	}
	if months <= 0 || len(schedule) == 0 {
		return loan.Principal
	}
	if months >= len(schedule) {
		return 0
	}
	return schedule[months-1].Balance
}
