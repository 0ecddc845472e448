package export

import (
	"strings"
	"testing"

	"github.com/ventworks/quotecalc/internal/pricing"
)

func sampleQuote() (pricing.JobParameters, pricing.Options, pricing.ResultSet) {
	params := pricing.DefaultParameters()
	params.LargeHoods = 2
	params.IsHoliday = true
	config := pricing.DefaultConfig()
	options := pricing.DefaultOptions()
	options.InitialFee = 150
	options.CommissionSplits = []pricing.CommissionSplit{
		{Name: "Alex", Percent: 10},
		{Name: "Sam", Percent: 5},
	}
	return params, options, pricing.Compute(params, config, options)
}

func TestBuildSummary(t *testing.T) {
	params, options, result := sampleQuote()

	s := BuildSummary(params, options, result)

	if s.GrandTotal != result.GrandTotal {
		t.Fatalf("grand total = %v, want %v", s.GrandTotal, result.GrandTotal)
	}
	if !strings.HasPrefix(s.Reference, "Q-") {
		t.Fatalf("unexpected reference %q", s.Reference)
	}

	mustHaveLine(t, s.CostLines, "Hood cleaning (2 large, 0 small)")
	mustHaveLine(t, s.TotalLines, "Holiday surcharge")
	mustHaveLine(t, s.TotalLines, "Initial fee")
	mustHaveLine(t, s.ProfitLines, "Commission — Alex (10%)")
	mustHaveLine(t, s.ProfitLines, "Commission — Sam (5%)")
	mustHaveLine(t, s.ProfitLines, "Company profit")
}

func TestBuildSummary_OmitsZeroOptionalLines(t *testing.T) {
	params := pricing.DefaultParameters()
	options := pricing.DefaultOptions()
	options.RoundingEnabled = false
	result := pricing.Compute(params, pricing.DefaultConfig(), options)

	s := BuildSummary(params, options, result)

	for _, line := range s.TotalLines {
		if line.Label == "Holiday surcharge" || line.Label == "Initial fee" || line.Label == "Rounding adjustment" {
			t.Fatalf("zero line %q should be omitted", line.Label)
		}
	}
}

func TestSummaryText(t *testing.T) {
	params, options, result := sampleQuote()
	s := BuildSummary(params, options, result)

	text := s.Text()

	if !strings.Contains(text, "GRAND TOTAL") {
		t.Fatal("text summary is missing the grand total")
	}
	if !strings.Contains(text, s.Reference) {
		t.Fatal("text summary is missing the reference")
	}
	if !strings.Contains(text, "Labor") {
		t.Fatal("text summary is missing cost lines")
	}
}

func TestGeneratePDF(t *testing.T) {
	params, options, result := sampleQuote()
	s := BuildSummary(params, options, result)

	data, err := GeneratePDF(s)
	if err != nil {
		t.Fatalf("GeneratePDF returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GeneratePDF returned no bytes")
	}
}

func TestGenerateExcel(t *testing.T) {
	params, options, result := sampleQuote()
	s := BuildSummary(params, options, result)

	data, err := GenerateExcel(s)
	if err != nil {
		t.Fatalf("GenerateExcel returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GenerateExcel returned no bytes")
	}
}

func mustHaveLine(t *testing.T, lines []Line, label string) {
	t.Helper()
	for _, line := range lines {
		if line.Label == label {
			return
		}
	}
	t.Fatalf("missing line %q in %+v", label, lines)
}
