package domain

// PropertyClass selects the depreciation recovery period.
type PropertyClass string

const (
	ClassResidential PropertyClass = "residential" // 27.5 year straight line
	ClassCommercial  PropertyClass = "commercial"  // 39 year straight line
)

// Unit is a single rentable unit in the property.
type Unit struct {
	Name        string  `json:"name,omitempty"`
	Bedrooms    int     `json:"bedrooms,omitempty"`
	Bathrooms   float64 `json:"bathrooms,omitempty"`
	MonthlyRent float64 `json:"monthly_rent"`
}

// PropertySnapshot describes the property as of the analysis date.
type PropertySnapshot struct {
	Address       string        `json:"address,omitempty"`
	PurchasePrice float64       `json:"purchase_price"`
	PurchaseDate  string        `json:"purchase_date,omitempty"` // YYYY-MM-DD, informational
	LandValue     float64       `json:"land_value"`
	CurrentValue  float64       `json:"current_value"`
	Class         PropertyClass `json:"class"`
	Units         []Unit        `json:"units"`
}

// TotalMonthlyRent sums the scheduled market rent across all units.
func (p PropertySnapshot) TotalMonthlyRent() float64 {
	total := 0.0
	for _, u := range p.Units {
		total += u.MonthlyRent
	}
	return total
}

// DepreciableBasis is purchase price minus land value. Land does not
// depreciate; the result is never negative.
func (p PropertySnapshot) DepreciableBasis() float64 {
	basis := p.PurchasePrice - p.LandValue
	if basis < 0 {
		return 0
	}
	return basis
}

// RecoveryYears returns the straight-line recovery period for the property
// classification. Residential is the default.
func (p PropertySnapshot) RecoveryYears() float64 {
	if p.Class == ClassCommercial {
		return 39.0
	}
	return 27.5
}
