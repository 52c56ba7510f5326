package payroll

import "math"

// roundingEpsilon nudges values such as 1.005 that sit just below a half
// cent in binary so that they round up.
const roundingEpsilon = 2.220446049250313e-16

type CalculationInput struct {
	BaseSalary     float64
	HRAPercent     float64
	DAPercent      float64
	TaxPercent     float64
	PFPercent      float64
	OtherDeduction float64
}

type Calculation struct {
	Gross      float64
	Deductions float64
	Net        float64
	Breakdown  Breakdown
}

// Calculate derives the pay breakdown of one employee. Tax applies to gross,
// PF applies to base. Non-finite inputs count as zero.
func Calculate(in CalculationInput) Calculation {
	base := finite(in.BaseSalary)
	hra := base * finite(in.HRAPercent) / 100
	da := base * finite(in.DAPercent) / 100
	gross := base + hra + da

	tax := gross * finite(in.TaxPercent) / 100
	pf := base * finite(in.PFPercent) / 100
	other := finite(in.OtherDeduction)
	deductions := tax + pf + other

	return Calculation{
		Gross:      round2(gross),
		Deductions: round2(deductions),
		Net:        round2(gross - deductions),
		Breakdown: Breakdown{
			Base:  round2(base),
			HRA:   round2(hra),
			DA:    round2(da),
			Tax:   round2(tax),
			PF:    round2(pf),
			Other: round2(other),
		},
	}
}

// round2 rounds half up to two decimals.
func round2(n float64) float64 {
	return math.Floor((n+roundingEpsilon)*100+0.5) / 100
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
