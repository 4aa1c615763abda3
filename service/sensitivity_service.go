package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"rental-analyzer/domain"
)

// Variables accepted by RunSensitivity and BreakEven. Rent perturbs
// multiplicatively (level +0.10 raises every unit's rent 10%); the rate
// variables shift additively in percentage points (level +0.01 adds one
// point).
const (
	VarRent         = "rent"
	VarVacancy      = "vacancy"
	VarAppreciation = "appreciation"
	VarStockReturn  = "stock_return"
	VarRentGrowth   = "rent_growth"
	VarSellingCosts = "selling_costs"
)

// ErrNoBreakEven is returned when the two scenarios never cross inside the
// break-even search range.
var ErrNoBreakEven = errors.New("scenarios do not cross within the search range")

// SensitivityService perturbs one assumption at a time and recomputes the
// full comparison. Cost grows with grid size times one comparison, so grids
// are capped and sweeps honor context cancellation between points.
type SensitivityService struct {
	scenarios *ScenarioService
	maxLevels int
	log       zerolog.Logger
}

func NewSensitivityService(scenarios *ScenarioService, maxLevels int, log zerolog.Logger) *SensitivityService {
	if maxLevels <= 0 || maxLevels > MaxSensitivityLevels {
		maxLevels = MaxSensitivityLevels
	}
	return &SensitivityService{scenarios: scenarios, maxLevels: maxLevels, log: log}
}

// cloneConfig copies the configuration deeply enough to perturb it without
// touching the caller's value.
func cloneConfig(cfg domain.AnalysisConfig) domain.AnalysisConfig {
	units := make([]domain.Unit, len(cfg.Property.Units))
	copy(units, cfg.Property.Units)
	cfg.Property.Units = units
	return cfg
}

// applyLevel returns a copy of cfg with the named variable perturbed by the
// given level.
func applyLevel(cfg domain.AnalysisConfig, variable string, level float64) (domain.AnalysisConfig, error) {
	out := cloneConfig(cfg)
	switch variable {
	case VarRent:
		for i := range out.Property.Units {
			out.Property.Units[i].MonthlyRent *= 1 + level
		}
	case VarVacancy:
		out.Operating.VacancyPct += level
	case VarAppreciation:
		out.Assumptions.AppreciationRate += level
	case VarStockReturn:
		out.Assumptions.StockReturnRate += level
	case VarRentGrowth:
		out.Assumptions.RentGrowthRate += level
	case VarSellingCosts:
		out.Assumptions.SellingCostsPct += level
	default:
		return out, fmt.Errorf("unknown sensitivity variable %q", variable)
	}
	return out, nil
}

// setAbsolute returns a copy of cfg with the named variable set to an
// absolute value. Rent is interpreted as total monthly rent, distributed
// across units in proportion to their current rents.
func setAbsolute(cfg domain.AnalysisConfig, variable string, value float64) (domain.AnalysisConfig, error) {
	out := cloneConfig(cfg)
	switch variable {
	case VarRent:
		current := out.Property.TotalMonthlyRent()
		if current <= 0 {
			return out, fmt.Errorf("cannot scale rent from a zero rent roll")
		}
		factor := value / current
		for i := range out.Property.Units {
			out.Property.Units[i].MonthlyRent *= factor
		}
	case VarVacancy:
		out.Operating.VacancyPct = value
	case VarAppreciation:
		out.Assumptions.AppreciationRate = value
	case VarStockReturn:
		out.Assumptions.StockReturnRate = value
	case VarRentGrowth:
		out.Assumptions.RentGrowthRate = value
	case VarSellingCosts:
		out.Assumptions.SellingCostsPct = value
	default:
		return out, fmt.Errorf("unknown sensitivity variable %q", variable)
	}
	return out, nil
}

// RunSensitivity recomputes the full comparison once per perturbation level,
// holding every other input fixed, and returns the points in the order the
// levels were given.
func (s *SensitivityService) RunSensitivity(
	ctx context.Context,
	cfg domain.AnalysisConfig,
	variable string,
	levels []float64,
) ([]domain.SensitivityPoint, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return nil, errs
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("at least one perturbation level is required")
	}
	if len(levels) > s.maxLevels {
		return nil, fmt.Errorf("grid size %d exceeds the maximum of %d levels", len(levels), s.maxLevels)
	}

	points := make([]domain.SensitivityPoint, 0, len(levels))
	for _, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		perturbed, err := applyLevel(cfg, variable, level)
		if err != nil {
			return nil, err
		}
		if errs := ValidateConfig(perturbed); errs != nil {
			return nil, fmt.Errorf("level %+.4f produces an invalid configuration: %w", level, errs)
		}

		points = append(points, domain.SensitivityPoint{
			Level:  level,
			Result: s.scenarios.compare(perturbed),
		})
	}
	return points, nil
}

// BreakEven bisects the named variable over [lo, hi] to the value where the
// Keep-Rental and Sell-Now totals agree to within a dollar. Returns
// ErrNoBreakEven when the scenarios do not cross inside the range.
func (s *SensitivityService) BreakEven(
	ctx context.Context,
	cfg domain.AnalysisConfig,
	variable string,
	lo, hi float64,
) (domain.BreakEvenResult, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return domain.BreakEvenResult{}, errs
	}
	if lo >= hi {
		return domain.BreakEvenResult{}, fmt.Errorf("search range is empty: lo %v >= hi %v", lo, hi)
	}
	return breakEven(ctx, s.scenarios.compare, cfg, variable, lo, hi)
}

// breakEven bisects the named variable to the crossover of the two scenario
// totals, evaluating each candidate through the supplied comparison function.
func breakEven(
	ctx context.Context,
	eval func(domain.AnalysisConfig) domain.ComparisonResult,
	cfg domain.AnalysisConfig,
	variable string,
	lo, hi float64,
) (domain.BreakEvenResult, error) {
	// keep minus sell at the given value of the variable.
	diffAt := func(value float64) (float64, error) {
		c, err := setAbsolute(cfg, variable, value)
		if err != nil {
			return 0, err
		}
		if errs := ValidateConfig(c); errs != nil {
			return 0, fmt.Errorf("value %v produces an invalid configuration: %w", value, errs)
		}
		r := eval(c)
		return r.KeepRental.TotalReturn - r.SellNow.TotalReturn, nil
	}

	fLo, err := diffAt(lo)
	if err != nil {
		return domain.BreakEvenResult{}, err
	}
	fHi, err := diffAt(hi)
	if err != nil {
		return domain.BreakEvenResult{}, err
	}
	if fLo*fHi > 0 {
		return domain.BreakEvenResult{}, ErrNoBreakEven
	}

	mid, fMid := lo, fLo
	iterations := 0
	for i := 0; i < BreakEvenMaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return domain.BreakEvenResult{}, err
		}

		mid = (lo + hi) / 2
		fMid, err = diffAt(mid)
		if err != nil {
			return domain.BreakEvenResult{}, err
		}
		iterations = i + 1

		if math.Abs(fMid) < BreakEvenTolerance || hi-lo < 1e-9 {
			break
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	if math.Abs(fMid) >= BreakEvenTolerance {
		return domain.BreakEvenResult{}, ErrNoBreakEven
	}

	return domain.BreakEvenResult{
		Variable:   variable,
		Value:      roundTo6Decimals(mid),
		Difference: roundTo2Decimals(fMid),
		Iterations: iterations,
	}, nil
}

// VacancyStress zeroes rental income for a window of months and tracks the
// running cash balance against the carrying costs that keep accruing. The
// starting cash reserve is the owner's buffer at month zero.
func (s *SensitivityService) VacancyStress(
	cfg domain.AnalysisConfig,
	startMonth, vacantMonths int,
	startingCash float64,
) (domain.VacancyStressResult, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return domain.VacancyStressResult{}, errs
	}
	months := cfg.Assumptions.HoldYears * 12
	if startMonth < 0 || startMonth >= months {
		return domain.VacancyStressResult{}, fmt.Errorf("start month %d is outside the holding period", startMonth)
	}
	if vacantMonths <= 0 {
		return domain.VacancyStressResult{}, fmt.Errorf("vacant months must be positive")
	}

	schedule := BuildSchedule(cfg.Loan)
	records := ProjectCashFlows(cfg, schedule)
	fixed := cfg.Operating.FixedMonthly()

	carrying := fixed
	if startMonth < len(records) {
		carrying += records[startMonth].DebtService
	}

	balance := startingCash
	minBalance := balance
	lostRent := 0.0
	monthsNegative := 0

	for _, r := range records {
		vacant := r.Month >= startMonth && r.Month < startMonth+vacantMonths
		if vacant {
			// No income; fixed costs and debt service still accrue.
			balance -= fixed + r.DebtService
			lostRent += r.GrossIncome
		} else {
			balance += r.PreTaxCashFlow
		}
		if balance < 0 {
			monthsNegative++
		}
		if balance < minBalance {
			minBalance = balance
		}
	}

	maxShortfall := 0.0
	if minBalance < 0 {
		maxShortfall = -minBalance
	}

	return domain.VacancyStressResult{
		StartMonth:      startMonth,
		VacantMonths:    vacantMonths,
		LostRent:        roundTo2Decimals(lostRent),
		MonthlyCarrying: roundTo2Decimals(carrying),
		MaxShortfall:    roundTo2Decimals(maxShortfall),
		MonthsNegative:  monthsNegative,
		EndingBalance:   roundTo2Decimals(balance),
	}, nil
}

// ValueShock applies instantaneous price shocks to the current value and
// reports equity and financing impact. Default shocks are -10%, -20%, -30%.
func (s *SensitivityService) ValueShock(
	cfg domain.AnalysisConfig,
	shocks []float64,
) ([]domain.ValueShockScenario, error) {
	if errs := ValidateConfig(cfg); errs != nil {
		return nil, errs
	}
	if len(shocks) == 0 {
		shocks = []float64{-0.10, -0.20, -0.30}
	}
	if len(shocks) > s.maxLevels {
		return nil, fmt.Errorf("grid size %d exceeds the maximum of %d levels", len(shocks), s.maxLevels)
	}

	out := make([]domain.ValueShockScenario, 0, len(shocks))
	for _, shock := range shocks {
		if shock <= -1 {
			return nil, fmt.Errorf("shock %v wipes out the property value", shock)
		}
		shocked := cfg.Property.CurrentValue * (1 + shock)
		balance := cfg.Loan.Principal

		ltv := 0.0
		if shocked > 0 {
			ltv = balance / shocked
		}
		underwater := balance > shocked

		underwaterAmount := 0.0
		if underwater {
			underwaterAmount = balance - shocked
		}

		out = append(out, domain.ValueShockScenario{
			ShockPct:         shock,
			ShockedValue:     roundTo2Decimals(shocked),
			EquityLoss:       roundTo2Decimals(cfg.Property.CurrentValue - shocked),
			RemainingEquity:  roundTo2Decimals(shocked - balance),
			LoanToValue:      roundTo6Decimals(ltv),
			Underwater:       underwater,
			UnderwaterAmount: roundTo2Decimals(underwaterAmount),
			CanRefinance:     ltv <= RefinanceLTVLimit,
		})
	}
	return out, nil
}
