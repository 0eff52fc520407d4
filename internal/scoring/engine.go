// Package scoring implements the credit-risk model applied to a study's
// financial statement: an Altman-style discriminant score, an EBITDA-based
// payment capacity and the working-capital cycle indicators.
//
// Compute is pure and total: absent inputs are treated as zero, and the
// divisors that represent totals fall back to 1 so the score is always
// defined. The cycle denominator (cost of sales adjusted by inventory change)
// is deliberately not guarded; a zero denominator surfaces as IEEE ±Inf (NaN
// for 0/0) and the caller decides how to persist it.
package scoring

import "math"

// Stability factors by risk band.
const (
	StabilityHighRisk   = 0.33
	StabilityMediumRisk = 0.66
	StabilityLowRisk    = 1.0
)

// Discriminant thresholds. Both boundaries are inclusive on the lower band.
const (
	zHighRiskMax   = 1.8
	zMediumRiskMax = 3.0
)

const daysPerYear = 365

// Inputs carries the raw statement fields of a study. Every field may be nil;
// normalization to the zero-default policy happens once, inside Compute.
type Inputs struct {
	TotalCurrentAssets      *float64
	TotalAssets             *float64
	AccountsReceivable1     *float64
	AccountsReceivable2     *float64
	Inventories1            *float64
	Inventories2            *float64
	TotalCurrentLiabilities *float64
	TotalLiabilities        *float64

	ShortTermFinancialLiabilities *float64
	Suppliers1                    *float64
	Suppliers2                    *float64
	RetainedEarnings              *float64
	Equity                        *float64

	OrdinaryActivityRevenue  *float64
	CostOfSales              *float64
	GrossProfit              *float64
	AdministrativeExpenses   *float64
	SellingExpenses          *float64
	DepreciationAmortization *float64
	FinancialExpenses        *float64
}

// Result is the computed score. The rounded day counts keep float64 type so a
// degenerate cycle denominator can carry its InfNaN sentinel out of the
// engine unchanged.
type Result struct {
	Z               float64
	StabilityFactor float64

	Ebitda                 float64
	AdjustedEbitda         float64
	CurrentDebtService     float64
	AnnualPaymentCapacity  float64
	MonthlyPaymentCapacity float64

	AveragePaymentTime         float64
	AccountsReceivableTurnover float64
	InventoryTurnover          float64
	SuppliersTurnover          float64
	MaximumPaymentTime         float64

	// DegradedDivisors names the divisors that were absent or zero and fell
	// back to 1. Ratios computed against a defaulted divisor are not a
	// reliable signal.
	DegradedDivisors []string
}

// Compute runs the model over the normalized inputs. periodMonths is the span
// of the income statement in months (see PeriodMonths); the annual payment
// capacity is divided by it to obtain the monthly figure.
func Compute(in Inputs, periodMonths int) Result {
	if periodMonths < 1 {
		periodMonths = PeriodMonthsDefault
	}

	var degraded []string
	divisor := func(p *float64, name string) float64 {
		if v := val(p); v != 0 {
			return v
		}
		degraded = append(degraded, name)
		return 1
	}

	totalAssets := divisor(in.TotalAssets, "totalAssets")
	totalLiabilities := divisor(in.TotalLiabilities, "totalLiabilities")

	x1 := (val(in.TotalCurrentAssets) - val(in.TotalCurrentLiabilities)) / totalAssets
	x2 := val(in.RetainedEarnings) / totalAssets
	x3 := (val(in.GrossProfit) + val(in.AdministrativeExpenses) + val(in.SellingExpenses)) / totalAssets
	x4 := val(in.Equity) / totalLiabilities
	x5 := val(in.OrdinaryActivityRevenue) / totalAssets

	z := 1.2*x1 + 1.4*x2 + 3.3*x3 + 0.6*x4 + x5
	stability := stabilityFactor(z)

	ebitda := val(in.OrdinaryActivityRevenue) - val(in.CostOfSales) -
		val(in.AdministrativeExpenses) - val(in.SellingExpenses) -
		val(in.DepreciationAmortization)
	adjustedEbitda := ebitda * stability
	currentDebtService := val(in.ShortTermFinancialLiabilities) + val(in.FinancialExpenses)
	annualCapacity := adjustedEbitda - currentDebtService
	monthlyCapacity := math.Round(annualCapacity / float64(periodMonths))

	// Cycle denominator is intentionally unguarded; see package comment.
	cycleDenom := val(in.CostOfSales) + val(in.Inventories2) - val(in.Inventories1)
	avgPaymentTime := math.Round((val(in.Suppliers1) + val(in.Suppliers2)) / 2 / cycleDenom * daysPerYear)

	revenue := divisor(in.OrdinaryActivityRevenue, "ordinaryActivityRevenue")
	receivableTurnover := math.Round((val(in.AccountsReceivable1) + val(in.AccountsReceivable2)) / 2 / revenue * daysPerYear)

	costOfSales := divisor(in.CostOfSales, "costOfSales")
	inventoryTurnover := math.Round((val(in.Inventories1) + val(in.Inventories2)) / 2 / costOfSales * daysPerYear)

	suppliersTurnover := -avgPaymentTime

	return Result{
		Z:                          z,
		StabilityFactor:            stability,
		Ebitda:                     ebitda,
		AdjustedEbitda:             adjustedEbitda,
		CurrentDebtService:         currentDebtService,
		AnnualPaymentCapacity:      annualCapacity,
		MonthlyPaymentCapacity:     monthlyCapacity,
		AveragePaymentTime:         avgPaymentTime,
		AccountsReceivableTurnover: receivableTurnover,
		InventoryTurnover:          inventoryTurnover,
		SuppliersTurnover:          suppliersTurnover,
		MaximumPaymentTime:         receivableTurnover + inventoryTurnover + suppliersTurnover,
		DegradedDivisors:           degraded,
	}
}

// stabilityFactor maps the discriminant score to its risk band multiplier.
func stabilityFactor(z float64) float64 {
	switch {
	case z <= zHighRiskMax:
		return StabilityHighRisk
	case z <= zMediumRiskMax:
		return StabilityMediumRisk
	default:
		return StabilityLowRisk
	}
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
