package service

const (
	MaxPropertyValue = 1_000_000_000.0 // upper sanity bound for money inputs
	MaxLoanAmount    = 1_000_000_000.0
	MaxTermMonths    = 600 // 50 years
	MaxHoldYears     = 50
	MaxUnits         = 100

	// IRR root finder: bisection bracket then Newton refinement.
	IRRSearchLow     = -0.99
	IRRSearchHigh    = 10.0
	IRRTolerance     = 1e-7
	IRRMaxIterations = 200

	// Break-even solver stops when the scenario gap is under a dollar.
	BreakEvenTolerance     = 1.0
	BreakEvenMaxIterations = 200

	// Ceiling on sensitivity grid size; a full sweep costs one comparison
	// per level.
	MaxSensitivityLevels = 200

	// Typical lender refinance ceiling used by the value-shock analysis.
	RefinanceLTVLimit = 0.80
)
