// Package pricing implements the quote derivation pipeline: a pure function
// from job parameters, rate card and options to a full set of cost, markup
// and profit figures.
package pricing

import "math"

const (
	laborTaxRate     = 0.17
	targetCostPct    = 62.0
	holidayRate      = 0.25
	minMarkupPct     = 20.0
	defaultRoundStep = 50.0

	markupAtOneDay     = 120.0
	markupAtThirtyDays = 35.0
)

// Compute derives a fresh ResultSet from one configuration snapshot. It is
// deterministic, has no side effects and never fails: inputs are expected to
// already satisfy the data-model invariants (the input model clamps them).
func Compute(params JobParameters, config PricingConfig, options Options) ResultSet {
	var r ResultSet

	// Hood cleaning, with a volume discount for repeat occurrences.
	r.HoodCost = hoodCost(params, config)
	r.HoodLaborCost = r.HoodCost * params.HoodLaborCostPerc / 100
	r.HoodMaterialCost = r.HoodCost * params.HoodMaterialCostPerc / 100

	// Labor. A one-day job with more than one worker gets exactly one of
	// them reclassified as supervisor at the supervisor rate.
	r.LaborCost = crewLabor(params, config) + r.HoodLaborCost
	r.LaborTax = r.LaborCost * laborTaxRate

	if params.IncludeInsurance {
		r.WorkCompCost = r.LaborCost * config.WorkCompRate / 100
	}

	if options.IncludeTransport {
		r.TransportCost = transportCost(params, config)
	}

	if options.IncludeMaterials {
		r.MaterialsCost = params.MaterialsPerDay * float64(params.Days)
	}
	r.MaterialsCost += r.HoodMaterialCost
	if options.IncludeEquipment {
		r.EquipmentCost = params.EquipmentPerDay * float64(params.Days)
	}

	r.BaseCosts = r.LaborCost + r.LaborTax + r.WorkCompCost +
		r.TransportCost + r.MaterialsCost + r.EquipmentCost + r.HoodCost

	operationalPct := options.SuppliesPct + options.AdditionalEquipmentPct +
		options.UniformSafetyPct + options.CommunicationsPct + options.OverheadPct
	r.OperationalCosts = r.BaseCosts * operationalPct / 100

	// Direct costs.
	r.Subtotal = r.BaseCosts + r.OperationalCosts

	r.Residual = r.Subtotal * options.ResidualPct / 100
	r.AdjustedSubtotal = r.Subtotal + r.Residual

	r.MarkupPct = markupPercent(params, options, r.Subtotal, r.AdjustedSubtotal)
	r.MarkupAmount = r.AdjustedSubtotal * r.MarkupPct / 100

	if params.IsHoliday {
		r.HolidaySurcharge = holidayRate * (r.AdjustedSubtotal + r.MarkupAmount)
	}
	r.TotalPrice = r.AdjustedSubtotal + r.MarkupAmount + r.HolidaySurcharge

	if params.IncludeInsurance {
		r.GeneralLiability = r.TotalPrice * config.GLRate / 1000
	}
	r.InitialFee = options.InitialFee

	r.PreRoundingTotal = r.TotalPrice + r.GeneralLiability + r.InitialFee
	r.GrandTotal = r.PreRoundingTotal
	if options.RoundingEnabled {
		r.GrandTotal = roundToStep(r.PreRoundingTotal, options.RoundingMethod, options.RoundingStep)
		r.RoundingAdjustment = r.GrandTotal - r.PreRoundingTotal
	}

	costBasis := r.Subtotal
	if params.UseSubcontractor {
		costBasis = params.SubcontractorCost
	}
	// A degenerate all-zero job has no price; its cost share is defined as
	// zero rather than NaN.
	if r.TotalPrice > 0 {
		r.CostPct = math.Round(100 * costBasis / r.TotalPrice)
	}
	r.ProfitPct = 100 - r.CostPct
	r.TargetAchieved = r.CostPct == targetCostPct

	r.NetProfit = r.GrandTotal - costBasis

	r.TotalCommissionPct, r.TotalCommission, r.CommissionLines =
		commission(options, r.NetProfit)
	r.CompanyProfit = r.NetProfit - r.TotalCommission

	if params.UseSubcontractor {
		r.SubcontractorBenefit = r.Subtotal - params.SubcontractorCost
	}

	return r
}

func hoodCost(params JobParameters, config PricingConfig) float64 {
	count := params.LargeHoods + params.SmallHoods
	if count == 0 {
		return 0
	}

	freq := params.HoodCleaningFrequency
	if freq < 1 {
		freq = 1
	}

	cost := (float64(params.LargeHoods)*config.LargeHoodPrice +
		float64(params.SmallHoods)*config.SmallHoodPrice) * float64(freq)

	// Volume discount: 0.85 at two occurrences, stepping down 5 points per
	// occurrence to a floor of 0.70 at five or more.
	if freq > 1 {
		capped := freq
		if capped > 5 {
			capped = 5
		}
		cost *= 0.9 - 0.05*float64(capped-1)
	}

	return cost
}

func crewLabor(params JobParameters, config PricingConfig) float64 {
	workers := float64(params.Workers)
	days := float64(params.Days)

	if params.Days == 1 && params.Workers > 1 {
		regular := (workers - 1) * config.RegularPayRate * params.Hours
		supervisor := config.SupervisorPayRate * params.Hours
		return regular + supervisor
	}

	return workers * config.RegularPayRate * params.Hours * days
}

func transportCost(params JobParameters, config PricingConfig) float64 {
	daily := config.TransportCostPerDay
	if params.OutsideHouston {
		daily = config.OutsideHoustonTransportCostPerDay
	}

	cost := daily * float64(params.Days)

	// Long-contract discounts stack multiplicatively.
	if params.Days > 7 {
		cost *= 0.8
	}
	if params.Days > 21 {
		cost *= 0.7
	}

	return cost
}

func markupPercent(params JobParameters, options Options, directCosts, adjustedSubtotal float64) float64 {
	if options.MarkupMode == MarkupCostOptimized {
		if adjustedSubtotal == 0 {
			return minMarkupPct
		}
		pct := math.Round(((directCosts*100/targetCostPct)/adjustedSubtotal - 1) * 100)
		if pct < minMarkupPct {
			return minMarkupPct
		}
		return pct
	}

	if options.MarkupMode == MarkupCustom {
		return options.CustomMarkupPercentage
	}

	// Duration-based: 120% for a one-day job, sliding down to 35% at
	// thirty days or more.
	t := float64(params.Days-1) / 29
	if t > 1 {
		t = 1
	}
	return math.Round(markupAtOneDay - (markupAtOneDay-markupAtThirtyDays)*t)
}

func roundToStep(value float64, method RoundingMethod, step float64) float64 {
	if step <= 0 {
		step = defaultRoundStep
	}

	switch method {
	case RoundDown:
		return math.Floor(value/step) * step
	case RoundNearest:
		return math.Round(value/step) * step
	default:
		return math.Ceil(value/step) * step
	}
}

func commission(options Options, netProfit float64) (totalPct, total float64, lines []CommissionLine) {
	if len(options.CommissionSplits) == 0 {
		totalPct = options.CommissionPercentage
		total = netProfit * totalPct / 100
		return totalPct, total, nil
	}

	lines = make([]CommissionLine, 0, len(options.CommissionSplits))
	for _, split := range options.CommissionSplits {
		amount := netProfit * split.Percent / 100
		lines = append(lines, CommissionLine{
			Name:    split.Name,
			Percent: split.Percent,
			Amount:  amount,
		})
		totalPct += split.Percent
		total += amount
	}

	return totalPct, total, lines
}
