package pricing

// JobParameters holds the mutable inputs describing one cleaning job.
type JobParameters struct {
	UseSubcontractor  bool
	SubcontractorCost float64

	Workers int
	Hours   float64
	Days    int

	MaterialsPerDay float64
	EquipmentPerDay float64

	LargeHoods            int
	SmallHoods            int
	HoodCleaningFrequency int
	HoodLaborCostPerc     float64
	HoodMaterialCostPerc  float64

	IsHoliday        bool
	OutsideHouston   bool
	IncludeInsurance bool
}

// PricingConfig holds the rate card. Rates are edited rarely and live only
// in memory; they are not part of undo/redo snapshots.
type PricingConfig struct {
	RegularPayRate                    float64
	SupervisorPayRate                 float64
	TransportCostPerDay               float64
	OutsideHoustonTransportCostPerDay float64
	LargeHoodPrice                    float64
	SmallHoodPrice                    float64
	WorkCompRate                      float64
	GLRate                            float64
}

// RoundingMethod selects how the grand total is snapped to a step multiple.
type RoundingMethod string

const (
	RoundUp      RoundingMethod = "up"
	RoundDown    RoundingMethod = "down"
	RoundNearest RoundingMethod = "nearest"
)

// MarkupMode selects how the markup percentage is determined.
type MarkupMode string

const (
	// MarkupByDuration interpolates from 120% at one day down to 35% at
	// thirty days or more.
	MarkupByDuration MarkupMode = "auto-by-duration"
	// MarkupCustom uses Options.CustomMarkupPercentage as-is.
	MarkupCustom MarkupMode = "custom"
	// MarkupCostOptimized solves the markup so direct costs land on the
	// 62% target cost ratio.
	MarkupCostOptimized MarkupMode = "cost-optimized"
)

// CommissionSplit is one named share of net profit.
type CommissionSplit struct {
	Name    string
	Percent float64
}

// Options holds feature toggles and percentages applied on top of the job
// parameters.
type Options struct {
	IncludeTransport bool
	IncludeMaterials bool
	IncludeEquipment bool

	RoundingEnabled bool
	RoundingMethod  RoundingMethod
	RoundingStep    float64

	MarkupMode             MarkupMode
	CustomMarkupPercentage float64

	// CommissionSplits, when non-empty, replaces the single
	// CommissionPercentage. Splits are not normalized: their sum may be
	// over or under 100 and is surfaced as-is.
	CommissionPercentage float64
	CommissionSplits     []CommissionSplit

	SuppliesPct            float64
	AdditionalEquipmentPct float64
	UniformSafetyPct       float64
	CommunicationsPct      float64
	OverheadPct            float64

	InitialFee  float64
	ResidualPct float64
}

// Clone returns a deep value copy of the options, including the commission
// split slice.
func (o Options) Clone() Options {
	c := o
	if len(o.CommissionSplits) > 0 {
		c.CommissionSplits = make([]CommissionSplit, len(o.CommissionSplits))
		copy(c.CommissionSplits, o.CommissionSplits)
	}
	return c
}

// CommissionLine is one computed commission payout.
type CommissionLine struct {
	Name    string
	Percent float64
	Amount  float64
}

// ResultSet contains every derived quantity of one pricing run. It is
// rebuilt from scratch on every Compute call and never partially mutated.
type ResultSet struct {
	HoodCost         float64
	HoodLaborCost    float64
	HoodMaterialCost float64

	LaborCost    float64
	LaborTax     float64
	WorkCompCost float64

	TransportCost    float64
	MaterialsCost    float64
	EquipmentCost    float64
	BaseCosts        float64
	OperationalCosts float64

	Subtotal         float64
	Residual         float64
	AdjustedSubtotal float64

	MarkupPct        float64
	MarkupAmount     float64
	HolidaySurcharge float64
	TotalPrice       float64

	GeneralLiability float64
	InitialFee       float64

	PreRoundingTotal   float64
	RoundingAdjustment float64
	GrandTotal         float64

	CostPct        float64
	ProfitPct      float64
	TargetAchieved bool

	NetProfit          float64
	TotalCommissionPct float64
	TotalCommission    float64
	CommissionLines    []CommissionLine
	CompanyProfit      float64

	SubcontractorBenefit float64
}
