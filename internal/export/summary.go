// Package export builds the structured quote summary and renders it to the
// supported output formats (PDF, XLSX, plain text).
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventworks/quotecalc/internal/format"
	"github.com/ventworks/quotecalc/internal/pricing"
)

// Line is one labeled amount on the quote.
type Line struct {
	Label  string
	Amount float64
}

// Summary is the structured quote handed to the renderers. Amounts stay
// plain float64; formatting happens at render time.
type Summary struct {
	Title       string
	Reference   string
	Date        string
	CostLines   []Line
	TotalLines  []Line
	ProfitLines []Line
	GrandTotal  float64
}

// BuildSummary assembles the exportable summary for the current quote.
// Zero-valued optional lines (holiday surcharge, fees, adjustments) are
// omitted.
func BuildSummary(params pricing.JobParameters, options pricing.Options, result pricing.ResultSet) Summary {
	s := Summary{
		Title:      "Service Quote",
		Reference:  shortReference(),
		Date:       time.Now().Format("2006-01-02"),
		GrandTotal: result.GrandTotal,
	}

	s.CostLines = append(s.CostLines, Line{"Labor", result.LaborCost})
	s.CostLines = append(s.CostLines, Line{"Labor tax", result.LaborTax})
	if result.WorkCompCost > 0 {
		s.CostLines = append(s.CostLines, Line{"Workers' comp", result.WorkCompCost})
	}
	if result.TransportCost > 0 {
		s.CostLines = append(s.CostLines, Line{"Transport", result.TransportCost})
	}
	if result.MaterialsCost > 0 {
		s.CostLines = append(s.CostLines, Line{"Materials", result.MaterialsCost})
	}
	if result.EquipmentCost > 0 {
		s.CostLines = append(s.CostLines, Line{"Equipment", result.EquipmentCost})
	}
	if result.HoodCost > 0 {
		label := fmt.Sprintf("Hood cleaning (%d large, %d small)", params.LargeHoods, params.SmallHoods)
		s.CostLines = append(s.CostLines, Line{label, result.HoodCost})
	}
	if result.OperationalCosts > 0 {
		s.CostLines = append(s.CostLines, Line{"Operational costs", result.OperationalCosts})
	}

	s.TotalLines = append(s.TotalLines, Line{"Subtotal", result.Subtotal})
	if result.Residual > 0 {
		s.TotalLines = append(s.TotalLines, Line{"Residual", result.Residual})
	}
	markupLabel := fmt.Sprintf("Markup (%s)", format.Percent(result.MarkupPct))
	s.TotalLines = append(s.TotalLines, Line{markupLabel, result.MarkupAmount})
	if result.HolidaySurcharge > 0 {
		s.TotalLines = append(s.TotalLines, Line{"Holiday surcharge", result.HolidaySurcharge})
	}
	if result.GeneralLiability > 0 {
		s.TotalLines = append(s.TotalLines, Line{"General liability", result.GeneralLiability})
	}
	if result.InitialFee > 0 {
		s.TotalLines = append(s.TotalLines, Line{"Initial fee", result.InitialFee})
	}
	if result.RoundingAdjustment != 0 {
		s.TotalLines = append(s.TotalLines, Line{"Rounding adjustment", result.RoundingAdjustment})
	}

	s.ProfitLines = append(s.ProfitLines, Line{"Net profit", result.NetProfit})
	for _, line := range result.CommissionLines {
		label := fmt.Sprintf("Commission — %s (%s)", line.Name, format.Percent(line.Percent))
		s.ProfitLines = append(s.ProfitLines, Line{label, line.Amount})
	}
	if len(result.CommissionLines) == 0 && result.TotalCommission != 0 {
		label := fmt.Sprintf("Commission (%s)", format.Percent(result.TotalCommissionPct))
		s.ProfitLines = append(s.ProfitLines, Line{label, result.TotalCommission})
	}
	s.ProfitLines = append(s.ProfitLines, Line{"Company profit", result.CompanyProfit})
	if params.UseSubcontractor {
		s.ProfitLines = append(s.ProfitLines, Line{"Subcontractor benefit", result.SubcontractorBenefit})
	}

	return s
}

// Text renders the summary as a plain-text block suitable for printing or
// pasting.
func (s Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", s.Title)
	fmt.Fprintf(&b, "Reference: %s    Date: %s\n\n", s.Reference, s.Date)

	writeSection := func(heading string, lines []Line) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s\n", heading)
		for _, line := range lines {
			fmt.Fprintf(&b, "  %-40s %14s\n", line.Label, format.USD(line.Amount))
		}
		b.WriteString("\n")
	}

	writeSection("Costs", s.CostLines)
	writeSection("Totals", s.TotalLines)
	fmt.Fprintf(&b, "GRAND TOTAL: %s\n\n", format.USD(s.GrandTotal))
	writeSection("Profit", s.ProfitLines)

	return b.String()
}

func shortReference() string {
	id := uuid.NewString()
	return "Q-" + strings.ToUpper(id[:8])
}
