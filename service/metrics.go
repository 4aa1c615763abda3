package service

import (
	"math"

	"rental-analyzer/domain"
)

// NPV discounts the series at the given rate; flows[0] sits at time zero.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for t, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

func npvDerivative(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}

func hasSignChange(flows []float64) bool {
	pos, neg := false, false
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// IRR finds the discount rate that zeroes the NPV of the series, bracketing
// by bisection over [IRRSearchLow, IRRSearchHigh] and polishing with
// Newton-Raphson. A series without a sign change has no IRR and reports
// Converged false; the solver never panics or returns a sentinel rate.
func IRR(flows []float64) domain.IRRResult {
	if !hasSignChange(flows) {
		return domain.IRRResult{}
	}

	lo, hi := float64(IRRSearchLow), float64(IRRSearchHigh)
	flo := NPV(lo, flows)
	fhi := NPV(hi, flows)

	// The NPV curve is not monotonic in general; scan inward for a bracket
	// when the endpoints agree in sign.
	if flo*fhi > 0 {
		found := false
		prev, prevRate := flo, lo
		for r := lo + 0.01; r <= hi; r += 0.01 {
			f := NPV(r, flows)
			if prev*f <= 0 {
				lo, hi, flo = prevRate, r, prev
				found = true
				break
			}
			prev, prevRate = f, r
		}
		if !found {
			return domain.IRRResult{}
		}
	}

	for i := 0; i < IRRMaxIterations && hi-lo > IRRTolerance; i++ {
		mid := (lo + hi) / 2
		fm := NPV(mid, flows)
		if fm == 0 {
			lo, hi = mid, mid
			break
		}
		if (flo < 0) == (fm < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}

	// Newton refinement for the final digits.
	rate := (lo + hi) / 2
	for i := 0; i < 8; i++ {
		f := NPV(rate, flows)
		d := npvDerivative(rate, flows)
		if d == 0 {
			break
		}
		next := rate - f/d
		if next <= IRRSearchLow || next >= IRRSearchHigh {
			break
		}
		converged := math.Abs(next-rate) < IRRTolerance
		rate = next
		if converged {
			break
		}
	}

	return domain.IRRResult{Rate: rate, Converged: true}
}

// MinDSCR is the minimum NOI-to-debt-service ratio across levered months.
// Undefined when no month carries debt service; Applicable is false then,
// never a division by zero.
func MinDSCR(records []domain.MonthlyRecord) domain.Ratio {
	min := math.Inf(1)
	found := false
	for _, r := range records {
		if r.DebtService <= 0 {
			continue
		}
		found = true
		if v := r.NOI / r.DebtService; v < min {
			min = v
		}
	}
	if !found {
		return domain.Ratio{}
	}
	return domain.Ratio{Value: min, Applicable: true}
}

// CapRate is year-one NOI over current property value.
func CapRate(records []domain.MonthlyRecord, currentValue float64) domain.Ratio {
	if currentValue <= 0 || len(records) == 0 {
		return domain.Ratio{}
	}
	return domain.Ratio{Value: yearOneNOI(records) / currentValue, Applicable: true}
}

// CashOnCash is year-one cash flow (after-tax by default, pre-tax when
// configured) over total cash invested. The invested amount falls back to
// current equity when not supplied.
func CashOnCash(cfg domain.AnalysisConfig, records []domain.MonthlyRecord) domain.Ratio {
	invested := cfg.Assumptions.CashInvested
	if invested <= 0 {
		invested = cfg.Property.CurrentValue - cfg.Loan.Principal
	}
	if invested <= 0 || len(records) == 0 {
		return domain.Ratio{}
	}

	yearOne := 0.0
	for i := 0; i < len(records) && i < 12; i++ {
		if cfg.Assumptions.CashOnCashPreTax {
			yearOne += records[i].PreTaxCashFlow
		} else {
			yearOne += records[i].AfterTaxCashFlow
		}
	}
	return domain.Ratio{Value: yearOne / invested, Applicable: true}
}
