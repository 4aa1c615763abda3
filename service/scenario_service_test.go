package service

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-analyzer/domain"
	"rental-analyzer/repository"
)

// referenceConfig is a fourplex with a seasoned zero-rate loan, chosen so
// every intermediate figure can be verified by hand.
func referenceConfig() domain.AnalysisConfig {
	return domain.AnalysisConfig{
		Property: domain.PropertySnapshot{
			PurchasePrice: 350_000,
			LandValue:     70_000,
			CurrentValue:  500_000,
			Class:         domain.ClassResidential,
			Units: []domain.Unit{
				{Name: "A", MonthlyRent: 1200},
				{Name: "B", MonthlyRent: 1200},
				{Name: "C", MonthlyRent: 1200},
				{Name: "D", MonthlyRent: 1200},
			},
		},
		Loan: domain.LoanTerms{
			Principal:  200_000,
			AnnualRate: 0,
			TermMonths: 240,
		},
		Operating: domain.OperatingAssumptions{
			PropertyTaxMonthly: 500,
			InsuranceMonthly:   200,
			VacancyPct:         0.05,
			MaintenancePct:     0.05,
		},
		Assumptions: domain.ScenarioAssumptions{
			HoldYears:           10,
			AppreciationRate:    0.03,
			StockReturnRate:     0.10,
			SellingCostsPct:     0.06,
			CapitalGainsTaxRate: 0.20,
			IncomeTaxRate:       0.25,
			DiscountRate:        0.06,
		},
	}
}

func newTestScenarioService() (*ScenarioService, *repository.AnalysisRepositoryMemory, *repository.MockCache) {
	repo := repository.NewAnalysisRepositoryMemory()
	cache := repository.NewMockCache()
	return NewScenarioService(repo, cache, zerolog.Nop()), repo, cache
}

func TestCompareSellVsKeepReferenceProperty(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	result, err := svc.CompareSellVsKeep(referenceConfig())
	require.NoError(t, err)

	// Sell now: the gain is price minus basis with no selling-cost
	// deduction, so 240,000 of after-tax equity compounds at 10% for ten
	// years.
	sell := result.SellNow
	require.NotNil(t, sell.Sale)
	assert.InDelta(t, 150_000, sell.Sale.TaxableGain, 0.01)
	assert.InDelta(t, 30_000, sell.Sale.CapitalGainsTax, 0.01)
	assert.InDelta(t, 240_000, sell.Sale.NetProceeds, 0.01)
	assert.InDelta(t, 622_498.19, sell.TotalReturn, 0.5)
	assert.True(t, sell.Metrics.IRR.Converged)
	assert.InDelta(t, 0.10, sell.Metrics.IRR.Rate, 1e-4)
	assert.False(t, sell.Metrics.CapRate.Applicable)
	assert.False(t, sell.Metrics.MinDSCR.Applicable)
	assert.False(t, sell.Metrics.CashOnCash.Applicable)

	// Keep: 252,334.55 of after-tax cash flow plus 454,948.92 from the
	// terminal sale.
	keep := result.KeepRental
	assert.InDelta(t, 335_840.00, keep.PreTaxCashFlowTotal, 0.5)
	assert.InDelta(t, 252_334.55, keep.AfterTaxCashFlowTotal, 0.5)
	require.NotNil(t, keep.Sale)
	assert.InDelta(t, 671_958.19, keep.Sale.SalePrice, 0.5)
	assert.InDelta(t, 100_000, keep.Sale.LoanPayoff, 0.01)
	assert.InDelta(t, 248_181.82, keep.Sale.AdjustedBasis, 0.01)
	assert.InDelta(t, 454_948.92, keep.Sale.NetProceeds, 0.5)
	assert.InDelta(t, 707_283.47, keep.TotalReturn, 1.0)

	assert.InDelta(t, 4.3584, keep.Metrics.MinDSCR.Value, 1e-4)
	assert.True(t, keep.Metrics.MinDSCR.Applicable)
	assert.InDelta(t, 0.087168, keep.Metrics.CapRate.Value, 1e-5)
	// Cash-on-cash falls back to current equity of 300,000.
	assert.InDelta(t, 0.084112, keep.Metrics.CashOnCash.Value, 1e-5)
	assert.True(t, keep.Metrics.IRR.Converged)
	assert.Greater(t, keep.Metrics.IRR.Rate, sell.Metrics.IRR.Rate)
	assert.InDelta(t, 0.1494, keep.Metrics.IRR.Rate, 0.005)

	assert.Equal(t, domain.RecommendKeep, result.Recommendation)
	assert.InDelta(t, 84_785.28, result.Difference, 1.5)
	assert.True(t, result.DifferencePct.Applicable)
	assert.InDelta(t, 0.1362, result.DifferencePct.Value, 0.001)
	assert.NotEmpty(t, result.Explanation)

	// Every comparison carries the rent and appreciation crossovers.
	require.NotNil(t, result.BreakEvenAppreciation)
	assert.Equal(t, VarAppreciation, result.BreakEvenAppreciation.Variable)
	assert.InDelta(t, 0.0113, result.BreakEvenAppreciation.Value, 0.002)
	require.NotNil(t, result.BreakEvenRent)
	assert.Equal(t, VarRent, result.BreakEvenRent.Variable)
	assert.InDelta(t, 3756, result.BreakEvenRent.Value, 10)
}

func TestCompareSellVsKeepFavorsSellOnWeakRents(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	cfg := referenceConfig()
	for i := range cfg.Property.Units {
		cfg.Property.Units[i].MonthlyRent = 400
	}
	cfg.Assumptions.AppreciationRate = 0.0

	result, err := svc.CompareSellVsKeep(cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.RecommendSell, result.Recommendation)
	assert.Positive(t, result.Difference)
}

func TestCompareSellVsKeepValidationFailure(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	cfg := referenceConfig()
	cfg.Property.CurrentValue = -1
	cfg.Property.Units = nil
	cfg.Operating.VacancyPct = 1.5

	_, err := svc.CompareSellVsKeep(cfg)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.GreaterOrEqual(t, len(fieldErrs), 3)

	fields := make(map[string]bool)
	for _, fe := range fieldErrs {
		fields[fe.Field] = true
	}
	assert.True(t, fields["property.current_value"])
	assert.True(t, fields["property.units"])
	assert.True(t, fields["operating.vacancy_pct"])
}

func TestCompareSellVsKeepPersistsAndCaches(t *testing.T) {
	svc, repo, cache := newTestScenarioService()
	cfg := referenceConfig()

	first, err := svc.CompareSellVsKeep(cfg)
	require.NoError(t, err)
	assert.Len(t, repo.List(), 1)
	assert.Len(t, cache.Data, 1)

	// Second identical request is served from cache, so nothing new is
	// persisted.
	second, err := svc.CompareSellVsKeep(cfg)
	require.NoError(t, err)
	assert.Len(t, repo.List(), 1)
	assert.Equal(t, first.Recommendation, second.Recommendation)
	assert.InDelta(t, first.Difference, second.Difference, 1e-9)
}

func TestCompareSellVsKeepDeterministic(t *testing.T) {
	svcA, _, _ := newTestScenarioService()
	svcB, _, _ := newTestScenarioService()
	cfg := referenceConfig()

	a, err := svcA.CompareSellVsKeep(cfg)
	require.NoError(t, err)
	b, err := svcB.CompareSellVsKeep(cfg)
	require.NoError(t, err)

	rawA, err := json.Marshal(a)
	require.NoError(t, err)
	rawB, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(rawA), string(rawB))
}

func TestComputeScenarioUnleveredProperty(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	cfg := referenceConfig()
	cfg.Loan = domain.LoanTerms{}

	result, err := svc.ComputeScenario(cfg)
	require.NoError(t, err)

	assert.Equal(t, domain.ScenarioKeepRental, result.Name)
	assert.False(t, result.Metrics.MinDSCR.Applicable)
	require.NotNil(t, result.Sale)
	assert.Zero(t, result.Sale.LoanPayoff)
	// With no debt service, pre-tax cash flow equals NOI for every month.
	assert.InDelta(t, 3632*120, result.PreTaxCashFlowTotal, 0.5)
}

func TestComparisonResultSurvivesJSONRoundTrip(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	result, err := svc.CompareSellVsKeep(referenceConfig())
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded domain.ComparisonResult
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, result, decoded)
}

func TestEquityProjection(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	result, err := svc.ComputeScenario(referenceConfig())
	require.NoError(t, err)

	require.Len(t, result.YearlyEquity, 10)

	y1 := result.YearlyEquity[0]
	assert.Equal(t, 1, y1.Year)
	assert.InDelta(t, 515_000, y1.PropertyValue, 0.01)
	assert.InDelta(t, 15_000, y1.Appreciation, 0.01)
	assert.InDelta(t, 10_000, y1.PrincipalPaydown, 0.01)
	assert.InDelta(t, 190_000, y1.RemainingBalance, 0.01)
	assert.InDelta(t, 325_000, y1.NetEquity, 0.01)

	y10 := result.YearlyEquity[9]
	assert.InDelta(t, 100_000, y10.RemainingBalance, 0.01)
	assert.InDelta(t, 571_958.19, y10.NetEquity, 0.5)
}

func TestExplainRecommendationBands(t *testing.T) {
	strong := explainRecommendation(domain.RecommendKeep, domain.Ratio{Value: 0.25, Applicable: true})
	moderate := explainRecommendation(domain.RecommendKeep, domain.Ratio{Value: 0.15, Applicable: true})
	slight := explainRecommendation(domain.RecommendSell, domain.Ratio{Value: 0.05, Applicable: true})

	assert.NotEmpty(t, strong)
	assert.NotEmpty(t, moderate)
	assert.NotEmpty(t, slight)
	assert.NotEqual(t, strong, moderate)
	assert.NotEqual(t, moderate, slight)

	// An inapplicable advantage never renders as a zero percentage.
	na := explainRecommendation(domain.RecommendKeep, domain.Ratio{})
	assert.NotEmpty(t, na)
	assert.NotContains(t, na, "%")

	// Same inputs always produce the same text.
	assert.Equal(t, strong, explainRecommendation(domain.RecommendKeep, domain.Ratio{Value: 0.25, Applicable: true}))
}

func TestCompareSellVsKeepUnderwaterSellSide(t *testing.T) {
	svc, _, _ := newTestScenarioService()

	// More debt than value: selling today frees negative equity, so the
	// sell scenario projects a negative total.
	cfg := referenceConfig()
	cfg.Property.CurrentValue = 200_000
	cfg.Loan.Principal = 250_000

	result, err := svc.CompareSellVsKeep(cfg)
	require.NoError(t, err)

	assert.Negative(t, result.SellNow.TotalReturn)
	assert.Equal(t, domain.RecommendKeep, result.Recommendation)
	assert.Positive(t, result.Difference)

	// The percentage advantage is undefined against a non-positive total,
	// and the explanation must not render it as 0.0%.
	assert.False(t, result.DifferencePct.Applicable)
	assert.Zero(t, result.DifferencePct.Value)
	assert.NotEmpty(t, result.Explanation)
	assert.NotContains(t, result.Explanation, "%")

	// Keep wins across both whole default search ranges, so neither
	// break-even exists and the fields stay unset.
	assert.Nil(t, result.BreakEvenRent)
	assert.Nil(t, result.BreakEvenAppreciation)
}
