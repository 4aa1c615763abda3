package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rental-analyzer/domain"
)

func TestValidateConfigCleanInput(t *testing.T) {
	assert.Nil(t, ValidateConfig(referenceConfig()))
}

func TestValidateConfigCollectsEveryProblem(t *testing.T) {
	cfg := referenceConfig()
	cfg.Property.PurchasePrice = 0
	cfg.Property.LandValue = -5
	cfg.Loan.AnnualRate = 2.0
	cfg.Assumptions.HoldYears = 0

	errs := ValidateConfig(cfg)

	fields := make(map[string]int)
	for _, fe := range errs {
		fields[fe.Field]++
	}
	assert.GreaterOrEqual(t, len(errs), 4)
	assert.Contains(t, fields, "property.purchase_price")
	assert.Contains(t, fields, "property.land_value")
	assert.Contains(t, fields, "loan.annual_rate")
	assert.Contains(t, fields, "assumptions.hold_years")
}

func TestValidateConfigFieldChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AnalysisConfig)
		field  string
	}{
		{
			name:   "purchase price over limit",
			mutate: func(c *domain.AnalysisConfig) { c.Property.PurchasePrice = MaxPropertyValue + 1 },
			field:  "property.purchase_price",
		},
		{
			name:   "land value above purchase price",
			mutate: func(c *domain.AnalysisConfig) { c.Property.LandValue = c.Property.PurchasePrice + 1 },
			field:  "property.land_value",
		},
		{
			name:   "unknown property class",
			mutate: func(c *domain.AnalysisConfig) { c.Property.Class = "industrial" },
			field:  "property.class",
		},
		{
			name:   "negative unit rent",
			mutate: func(c *domain.AnalysisConfig) { c.Property.Units[0].MonthlyRent = -100 },
			field:  "property.units[0].monthly_rent",
		},
		{
			name:   "interest-only period covers whole term",
			mutate: func(c *domain.AnalysisConfig) { c.Loan.InterestOnlyMonths = c.Loan.TermMonths },
			field:  "loan.interest_only_months",
		},
		{
			name:   "hold beyond the cap",
			mutate: func(c *domain.AnalysisConfig) { c.Assumptions.HoldYears = MaxHoldYears + 1 },
			field:  "assumptions.hold_years",
		},
		{
			name:   "appreciation below -100%",
			mutate: func(c *domain.AnalysisConfig) { c.Assumptions.AppreciationRate = -1 },
			field:  "assumptions.appreciation_rate",
		},
		{
			name:   "management percentage above one",
			mutate: func(c *domain.AnalysisConfig) { c.Operating.ManagementPct = 1.2 },
			field:  "operating.management_pct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := referenceConfig()
			tt.mutate(&cfg)

			errs := ValidateConfig(cfg)

			assert.NotEmpty(t, errs)
			found := false
			for _, fe := range errs {
				if fe.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected an error on %s, got %v", tt.field, errs)
		})
	}
}

func TestValidateConfigSkipsLoanChecksWhenUnlevered(t *testing.T) {
	cfg := referenceConfig()
	cfg.Loan = domain.LoanTerms{}

	assert.Nil(t, ValidateConfig(cfg))
}
