package pricing

// DefaultConfig returns the in-memory rate card used until the operator
// edits it.
func DefaultConfig() PricingConfig {
	return PricingConfig{
		RegularPayRate:                    16,
		SupervisorPayRate:                 18,
		TransportCostPerDay:               120,
		OutsideHoustonTransportCostPerDay: 180,
		LargeHoodPrice:                    650,
		SmallHoodPrice:                    350,
		WorkCompRate:                      8,
		GLRate:                            12,
	}
}

// DefaultParameters returns the starting job: one worker, one eight-hour day.
func DefaultParameters() JobParameters {
	return JobParameters{
		Workers:               1,
		Hours:                 8,
		Days:                  1,
		HoodCleaningFrequency: 1,
		HoodLaborCostPerc:     60,
		HoodMaterialCostPerc:  40,
		IncludeInsurance:      true,
	}
}

// DefaultOptions returns the starting toggles: transport, materials and
// equipment included, duration-based markup, rounding up to the next 50.
func DefaultOptions() Options {
	return Options{
		IncludeTransport: true,
		IncludeMaterials: true,
		IncludeEquipment: true,

		RoundingEnabled: true,
		RoundingMethod:  RoundUp,
		RoundingStep:    50,

		MarkupMode:             MarkupByDuration,
		CustomMarkupPercentage: 20,

		CommissionPercentage: 10,

		SuppliesPct:            2,
		AdditionalEquipmentPct: 1.5,
		UniformSafetyPct:       1,
		CommunicationsPct:      0.5,
		OverheadPct:            3,
	}
}
