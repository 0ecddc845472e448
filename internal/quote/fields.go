package quote

import (
	"strconv"
	"strings"

	"github.com/ventworks/quotecalc/internal/pricing"
)

// fieldSetter applies one raw input value to the pending state, recording a
// warning for anything that had to be corrected.
type fieldSetter func(params *pricing.JobParameters, options *pricing.Options, raw string, w *Warnings)

// fieldSetters maps the declared input field names to their setters. The
// names match the input identifiers of the quote form.
var fieldSetters = map[string]fieldSetter{
	"useSubcontractor": func(p *pricing.JobParameters, _ *pricing.Options, raw string, _ *Warnings) {
		p.UseSubcontractor = parseBool(raw)
	},
	"subcontractorCost": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.SubcontractorCost = parseFloatMin(raw, 0, "subcontractorCost", p.SubcontractorCost, w)
	},
	"workers": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.Workers = parseIntMin(raw, 0, "workers", p.Workers, w)
	},
	"hours": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.Hours = parseFloatMin(raw, 1, "hours", p.Hours, w)
	},
	"days": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.Days = parseIntMin(raw, 1, "days", p.Days, w)
	},
	"materialsPerDay": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.MaterialsPerDay = parseFloatMin(raw, 0, "materialsPerDay", p.MaterialsPerDay, w)
	},
	"equipmentPerDay": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.EquipmentPerDay = parseFloatMin(raw, 0, "equipmentPerDay", p.EquipmentPerDay, w)
	},
	"largeHoods": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.LargeHoods = parseIntMin(raw, 0, "largeHoods", p.LargeHoods, w)
	},
	"smallHoods": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.SmallHoods = parseIntMin(raw, 0, "smallHoods", p.SmallHoods, w)
	},
	"hoodCleaningFrequency": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.HoodCleaningFrequency = parseIntMin(raw, 1, "hoodCleaningFrequency", p.HoodCleaningFrequency, w)
	},
	"hoodLaborCostPerc": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.HoodLaborCostPerc = parsePercent(raw, "hoodLaborCostPerc", p.HoodLaborCostPerc, w)
	},
	"hoodMaterialCostPerc": func(p *pricing.JobParameters, _ *pricing.Options, raw string, w *Warnings) {
		p.HoodMaterialCostPerc = parsePercent(raw, "hoodMaterialCostPerc", p.HoodMaterialCostPerc, w)
	},
	"isHoliday": func(p *pricing.JobParameters, _ *pricing.Options, raw string, _ *Warnings) {
		p.IsHoliday = parseBool(raw)
	},
	"outsideHouston": func(p *pricing.JobParameters, _ *pricing.Options, raw string, _ *Warnings) {
		p.OutsideHouston = parseBool(raw)
	},
	"includeInsurance": func(p *pricing.JobParameters, _ *pricing.Options, raw string, _ *Warnings) {
		p.IncludeInsurance = parseBool(raw)
	},

	"includeTransport": func(_ *pricing.JobParameters, o *pricing.Options, raw string, _ *Warnings) {
		o.IncludeTransport = parseBool(raw)
	},
	"includeMaterials": func(_ *pricing.JobParameters, o *pricing.Options, raw string, _ *Warnings) {
		o.IncludeMaterials = parseBool(raw)
	},
	"includeEquipment": func(_ *pricing.JobParameters, o *pricing.Options, raw string, _ *Warnings) {
		o.IncludeEquipment = parseBool(raw)
	},
	"roundingEnabled": func(_ *pricing.JobParameters, o *pricing.Options, raw string, _ *Warnings) {
		o.RoundingEnabled = parseBool(raw)
	},
	"roundingMethod": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		switch method := pricing.RoundingMethod(raw); method {
		case pricing.RoundUp, pricing.RoundDown, pricing.RoundNearest:
			o.RoundingMethod = method
		default:
			w.addf("unknown rounding method %q, keeping %q", raw, o.RoundingMethod)
		}
	},
	"roundingStep": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.RoundingStep = parseFloatMin(raw, 1, "roundingStep", o.RoundingStep, w)
	},
	"markupMode": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		switch mode := pricing.MarkupMode(raw); mode {
		case pricing.MarkupByDuration, pricing.MarkupCustom, pricing.MarkupCostOptimized:
			o.MarkupMode = mode
		default:
			w.addf("unknown markup mode %q, keeping %q", raw, o.MarkupMode)
		}
	},
	"customMarkupPercentage": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.CustomMarkupPercentage = parseFloatMin(raw, 20, "customMarkupPercentage", o.CustomMarkupPercentage, w)
	},
	"commissionPercentage": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.CommissionPercentage = parseFloatMin(raw, 0, "commissionPercentage", o.CommissionPercentage, w)
	},
	"suppliesPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.SuppliesPct = parseFloatMin(raw, 0, "suppliesPct", o.SuppliesPct, w)
	},
	"additionalEquipmentPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.AdditionalEquipmentPct = parseFloatMin(raw, 0, "additionalEquipmentPct", o.AdditionalEquipmentPct, w)
	},
	"uniformSafetyPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.UniformSafetyPct = parseFloatMin(raw, 0, "uniformSafetyPct", o.UniformSafetyPct, w)
	},
	"communicationsPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.CommunicationsPct = parseFloatMin(raw, 0, "communicationsPct", o.CommunicationsPct, w)
	},
	"overheadPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.OverheadPct = parseFloatMin(raw, 0, "overheadPct", o.OverheadPct, w)
	},
	"initialFee": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.InitialFee = parseFloatMin(raw, 0, "initialFee", o.InitialFee, w)
	},
	"residualPct": func(_ *pricing.JobParameters, o *pricing.Options, raw string, w *Warnings) {
		o.ResidualPct = parseFloatMin(raw, 0, "residualPct", o.ResidualPct, w)
	},
}

// FieldNames returns the declared input field names, for callers that want
// to validate form payloads up front.
func FieldNames() []string {
	names := make([]string, 0, len(fieldSetters))
	for name := range fieldSetters {
		names = append(names, name)
	}
	return names
}

func parseFloatMin(raw string, min float64, field string, current float64, w *Warnings) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		w.addf("%s must be numeric, keeping previous value", field)
		return current
	}
	if value < min {
		w.addf("%s must be at least %v, clamped", field, min)
		return min
	}
	return value
}

func parseIntMin(raw string, min int, field string, current int, w *Warnings) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		w.addf("%s must be a whole number, keeping previous value", field)
		return current
	}
	if value < min {
		w.addf("%s must be at least %d, clamped", field, min)
		return min
	}
	return value
}

func parsePercent(raw, field string, current float64, w *Warnings) float64 {
	value := parseFloatMin(raw, 0, field, current, w)
	if value > 100 {
		w.addf("%s cannot exceed 100, clamped", field)
		return 100
	}
	return value
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
