package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"rental-analyzer/domain"
	"rental-analyzer/repository"
)

// roundTo2Decimals rounds money to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// roundTo6Decimals rounds rates; six decimals keeps basis-point precision
// through a JSON round trip.
func roundTo6Decimals(value float64) float64 {
	return math.Round(value*1_000_000) / 1_000_000
}

// ScenarioService builds Sell-Now and Keep-Rental outcomes from a fully
// specified configuration. Every computation is a pure function of its
// input; the repository and cache are side collaborators only.
type ScenarioService struct {
	repo  repository.AnalysisRepository
	cache repository.CacheRepository
	log   zerolog.Logger
}

// NewScenarioService creates a new ScenarioService with the given
// repository and cache.
func NewScenarioService(
	repo repository.AnalysisRepository,
	cache repository.CacheRepository,
	log zerolog.Logger,
) *ScenarioService {
	return &ScenarioService{repo: repo, cache: cache, log: log}
}

// ComputeScenario validates the configuration and returns the Keep-Rental
// projection for it.
func (s *ScenarioService) ComputeScenario(cfg domain.AnalysisConfig) (domain.ScenarioResult, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return domain.ScenarioResult{}, errs
	}
	return s.keepRental(cfg), nil
}

// CompareSellVsKeep validates the configuration, computes both scenarios and
// the recommendation, persists the comparison and caches it by config hash.
func (s *ScenarioService) CompareSellVsKeep(cfg domain.AnalysisConfig) (domain.ComparisonResult, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return domain.ComparisonResult{}, errs
	}

	key, keyErr := cacheKey(cfg)
	if keyErr == nil {
		if raw, ok := s.cache.Get(key); ok {
			var cached domain.ComparisonResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	result := s.compare(cfg)
	s.attachBreakEvens(cfg, &result)

	// Persistence is not critical to the computation.
	if _, err := s.repo.Save(cfg, result); err != nil {
		s.log.Warn().Err(err).Msg("failed to save analysis")
	}
	if keyErr == nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(key, string(raw)); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache comparison")
			}
		}
	}

	return result, nil
}

// compare computes both scenarios without validation or side effects. The
// sensitivity analyzer calls it once per grid point.
func (s *ScenarioService) compare(cfg domain.AnalysisConfig) domain.ComparisonResult {
	sell := s.sellNow(cfg)
	keep := s.keepRental(cfg)

	result := domain.ComparisonResult{
		SellNow:    sell,
		KeepRental: keep,
	}

	// The percentage advantage is measured against the losing scenario's
	// total; it is not applicable when that total is not positive.
	if keep.TotalReturn > sell.TotalReturn {
		result.Recommendation = domain.RecommendKeep
		result.Difference = roundTo2Decimals(keep.TotalReturn - sell.TotalReturn)
		if sell.TotalReturn > 0 {
			result.DifferencePct = domain.Ratio{
				Value:      roundTo6Decimals(result.Difference / sell.TotalReturn),
				Applicable: true,
			}
		}
	} else {
		result.Recommendation = domain.RecommendSell
		result.Difference = roundTo2Decimals(sell.TotalReturn - keep.TotalReturn)
		if keep.TotalReturn > 0 {
			result.DifferencePct = domain.Ratio{
				Value:      roundTo6Decimals(result.Difference / keep.TotalReturn),
				Applicable: true,
			}
		}
	}
	result.Explanation = explainRecommendation(result.Recommendation, result.DifferencePct)

	return result
}

// Default search ranges for the break-evens reported with every comparison.
const (
	breakEvenApprLow  = -0.20
	breakEvenApprHigh = 0.30
	breakEvenRentSpan = 4.0 // upper bound as a multiple of the current rent roll
)

// attachBreakEvens solves the rent and appreciation crossovers for the
// comparison. A range without a crossover leaves the field unset; the
// break-evens never fail a comparison that already computed.
func (s *ScenarioService) attachBreakEvens(cfg domain.AnalysisConfig, result *domain.ComparisonResult) {
	rentHigh := cfg.Property.TotalMonthlyRent() * breakEvenRentSpan
	if rentHigh > 0 {
		if be, err := breakEven(context.Background(), s.compare, cfg, VarRent, 0, rentHigh); err == nil {
			result.BreakEvenRent = &be
		}
	}
	if be, err := breakEven(context.Background(), s.compare, cfg, VarAppreciation, breakEvenApprLow, breakEvenApprHigh); err == nil {
		result.BreakEvenAppreciation = &be
	}
}

// sellNow sells at current value today and compounds the after-tax proceeds
// at the alternative-investment return for the holding period.
func (s *ScenarioService) sellNow(cfg domain.AnalysisConfig) domain.ScenarioResult {
	years := cfg.Assumptions.HoldYears

	sale := SaleNow(cfg)
	futureValue := sale.NetProceeds * math.Pow(1+cfg.Assumptions.StockReturnRate, float64(years))

	// Outlay at time zero, nothing until the terminal stock sale.
	flows := make([]float64, years+1)
	flows[0] = -sale.NetProceeds
	flows[years] = futureValue

	result := domain.ScenarioResult{
		Name:          domain.ScenarioSellNow,
		TerminalValue: roundTo2Decimals(futureValue),
		TotalReturn:   roundTo2Decimals(futureValue),
		Sale:          &sale,
		Metrics: domain.Metrics{
			IRR: roundIRR(IRR(flows)),
			NPV: roundTo2Decimals(NPV(cfg.Assumptions.DiscountRate, flows)),
			// Cap rate, DSCR and cash-on-cash describe a held rental and do
			// not apply once the property is sold.
		},
	}
	roundSale(result.Sale)
	return result
}

// keepRental projects the rental through the hold and sells at the
// appreciated value at hold end.
func (s *ScenarioService) keepRental(cfg domain.AnalysisConfig) domain.ScenarioResult {
	years := cfg.Assumptions.HoldYears
	months := years * 12

	schedule := BuildSchedule(cfg.Loan)
	records := ProjectCashFlows(cfg, schedule)

	preTaxTotal, afterTaxTotal := 0.0, 0.0
	for _, r := range records {
		preTaxTotal += r.PreTaxCashFlow
		afterTaxTotal += r.AfterTaxCashFlow
	}

	futureValue := cfg.Property.CurrentValue * math.Pow(1+cfg.Assumptions.AppreciationRate, float64(years))
	payoff := BalanceAfter(cfg.Loan, schedule, months)
	accDep := AccumulatedDepreciation(cfg.Property, months)
	sale := SaleAt(cfg, futureValue, accDep, payoff)

	// The outlay forgone by not selling today is the equity a sale would
	// free up, so both scenarios price the same capital.
	equityNow := SaleNow(cfg).NetProceeds

	flows := make([]float64, years+1)
	flows[0] = -equityNow
	for _, r := range records {
		flows[1+r.Month/12] += r.AfterTaxCashFlow
	}
	flows[years] += sale.NetProceeds

	result := domain.ScenarioResult{
		Name:                  domain.ScenarioKeepRental,
		PreTaxCashFlowTotal:   roundTo2Decimals(preTaxTotal),
		AfterTaxCashFlowTotal: roundTo2Decimals(afterTaxTotal),
		TerminalValue:         roundTo2Decimals(sale.NetProceeds),
		TotalReturn:           roundTo2Decimals(afterTaxTotal + sale.NetProceeds),
		Sale:                  &sale,
		YearlyEquity:          equityProjection(cfg, schedule, records),
		Metrics: domain.Metrics{
			IRR:        roundIRR(IRR(flows)),
			NPV:        roundTo2Decimals(NPV(cfg.Assumptions.DiscountRate, flows)),
			CapRate:    roundRatio(CapRate(records, cfg.Property.CurrentValue)),
			MinDSCR:    roundRatio(MinDSCR(records)),
			CashOnCash: roundRatio(CashOnCash(cfg, records)),
		},
	}
	roundSale(result.Sale)
	return result
}

// equityProjection tracks appreciation, principal paydown and net equity
// year by year through the hold.
func equityProjection(
	cfg domain.AnalysisConfig,
	schedule []domain.PaymentRecord,
	records []domain.MonthlyRecord,
) []domain.EquityYear {
	years := cfg.Assumptions.HoldYears
	out := make([]domain.EquityYear, years)

	prevValue := cfg.Property.CurrentValue
	for y := 1; y <= years; y++ {
		value := cfg.Property.CurrentValue * math.Pow(1+cfg.Assumptions.AppreciationRate, float64(y))

		paydown := 0.0
		for i := (y - 1) * 12; i < y*12 && i < len(records); i++ {
			paydown += records[i].Principal
		}
		balance := BalanceAfter(cfg.Loan, schedule, y*12)

		out[y-1] = domain.EquityYear{
			Year:             y,
			PropertyValue:    roundTo2Decimals(value),
			Appreciation:     roundTo2Decimals(value - prevValue),
			PrincipalPaydown: roundTo2Decimals(paydown),
			RemainingBalance: roundTo2Decimals(balance),
			NetEquity:        roundTo2Decimals(value - balance),
		}
		prevValue = value
	}
	return out
}

func roundIRR(r domain.IRRResult) domain.IRRResult {
	if r.Converged {
		r.Rate = roundTo6Decimals(r.Rate)
	}
	return r
}

func roundRatio(r domain.Ratio) domain.Ratio {
	if r.Applicable {
		r.Value = roundTo6Decimals(r.Value)
	}
	return r
}

func roundSale(sale *domain.SaleBreakdown) {
	sale.SalePrice = roundTo2Decimals(sale.SalePrice)
	sale.SellingCosts = roundTo2Decimals(sale.SellingCosts)
	sale.LoanPayoff = roundTo2Decimals(sale.LoanPayoff)
	sale.AdjustedBasis = roundTo2Decimals(sale.AdjustedBasis)
	sale.TaxableGain = roundTo2Decimals(sale.TaxableGain)
	sale.CapitalGainsTax = roundTo2Decimals(sale.CapitalGainsTax)
	sale.NetProceeds = roundTo2Decimals(sale.NetProceeds)
}

// cacheKey hashes the canonical JSON form of the configuration.
func cacheKey(cfg domain.AnalysisConfig) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("compare:%016x", xxhash.Sum64(raw)), nil
}
