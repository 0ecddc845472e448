package quote

import (
	"reflect"
	"testing"

	"github.com/ventworks/quotecalc/internal/pricing"
)

func newTestSession() *Session {
	return NewSession(pricing.DefaultConfig(), pricing.DefaultParameters(), pricing.DefaultOptions())
}

func TestSetField_UpdatesAndRecomputes(t *testing.T) {
	s := newTestSession()
	before := s.Result()

	warnings, err := s.SetField("workers", "4")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if s.Params().Workers != 4 {
		t.Fatalf("workers = %d, want 4", s.Params().Workers)
	}
	if s.Result().LaborCost == before.LaborCost {
		t.Fatal("result was not recomputed after mutation")
	}
}

func TestSetField_UnknownFieldIsAnError(t *testing.T) {
	s := newTestSession()

	if _, err := s.SetField("gibberish", "1"); err == nil {
		t.Fatal("expected error for unknown field name")
	}
}

func TestSetField_ClampsToDeclaredMinimum(t *testing.T) {
	tests := []struct {
		field string
		raw   string
	}{
		{"hours", "-3"},
		{"days", "0"},
		{"hoodCleaningFrequency", "-1"},
		{"customMarkupPercentage", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s := newTestSession()
			warnings, err := s.SetField(tt.field, tt.raw)
			if err != nil {
				t.Fatalf("SetField returned error: %v", err)
			}
			if len(warnings) == 0 {
				t.Fatal("expected a clamp warning")
			}
		})
	}

	s := newTestSession()
	if _, err := s.SetField("hours", "-3"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if got := s.Params().Hours; got != 1 {
		t.Fatalf("hours = %v, want clamped to 1", got)
	}
}

func TestSetField_PercentFieldsClampToHundred(t *testing.T) {
	s := newTestSession()

	warnings, err := s.SetField("hoodLaborCostPerc", "150")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a clamp warning")
	}
	if got := s.Params().HoodLaborCostPerc; got != 100 {
		t.Fatalf("hoodLaborCostPerc = %v, want 100", got)
	}
}

func TestSetField_NonNumericKeepsPreviousValue(t *testing.T) {
	s := newTestSession()
	if _, err := s.SetField("hours", "6"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	warnings, err := s.SetField("hours", "abc")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning for a non-numeric value")
	}
	if got := s.Params().Hours; got != 6 {
		t.Fatalf("hours = %v, want previous value 6", got)
	}
}

func TestCrewInvariant_ZeroWorkersWithoutHoods(t *testing.T) {
	s := newTestSession()

	warnings, err := s.SetField("workers", "0")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected an invariant warning")
	}
	if s.Params().Workers != 1 {
		t.Fatalf("workers = %d, want auto-corrected to 1", s.Params().Workers)
	}
}

func TestCrewInvariant_ZeroWorkersAllowedWithHoods(t *testing.T) {
	s := newTestSession()
	if _, err := s.SetField("largeHoods", "2"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	warnings, err := s.SetField("workers", "0")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if s.Params().Workers != 0 {
		t.Fatalf("workers = %d, want 0", s.Params().Workers)
	}
}

func TestCrewInvariant_RemovingLastHoodRestoresWorker(t *testing.T) {
	s := newTestSession()
	mustSet(t, s, "largeHoods", "1")
	mustSet(t, s, "workers", "0")

	warnings, err := s.SetField("largeHoods", "0")
	if err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected an invariant warning")
	}
	if s.Params().Workers != 1 {
		t.Fatalf("workers = %d, want auto-corrected to 1", s.Params().Workers)
	}
}

func TestSetField_SameValueStillCommits(t *testing.T) {
	s := newTestSession()
	mustSet(t, s, "days", "3")
	mustSet(t, s, "days", "3")

	// Both events committed: two undo steps walk back to the initial state.
	if !s.Undo() {
		t.Fatal("first undo failed")
	}
	if !s.Undo() {
		t.Fatal("second undo failed")
	}
	if s.CanUndo() {
		t.Fatal("expected to be back at the initial snapshot")
	}
}

func TestUndoRedo_RestoresExactState(t *testing.T) {
	s := newTestSession()
	initial := s.Params()

	mustSet(t, s, "days", "12")
	mustSet(t, s, "largeHoods", "3")
	mutated := s.Params()
	mutatedResult := s.Result()

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if !s.Undo() {
		t.Fatal("second undo failed")
	}
	if !reflect.DeepEqual(s.Params(), initial) {
		t.Fatalf("undo did not restore initial params: %+v", s.Params())
	}

	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if !s.Redo() {
		t.Fatal("second redo failed")
	}
	if !reflect.DeepEqual(s.Params(), mutated) {
		t.Fatalf("redo did not restore mutated params: %+v", s.Params())
	}
	if !reflect.DeepEqual(s.Result(), mutatedResult) {
		t.Fatal("redo result differs from original computation")
	}
}

func TestUndo_OnFreshSessionIsNoop(t *testing.T) {
	s := newTestSession()

	if s.Undo() {
		t.Fatal("undo on a fresh session should report false")
	}
	if s.Redo() {
		t.Fatal("redo on a fresh session should report false")
	}
}

func TestUpdateConfig_RecomputesWithoutHistoryPush(t *testing.T) {
	s := newTestSession()
	mustSet(t, s, "workers", "2")
	laborBefore := s.Result().LaborCost

	config := s.Config()
	config.RegularPayRate *= 2
	s.UpdateConfig(config)

	if s.Result().LaborCost <= laborBefore {
		t.Fatal("rate change did not affect the result")
	}

	// The rate edit is not undoable: undo restores the previous params but
	// keeps pricing against the live rates.
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if got := s.Config().RegularPayRate; got != config.RegularPayRate {
		t.Fatalf("regular rate = %v, want live rate %v", got, config.RegularPayRate)
	}
}

func TestSetCommissionSplits(t *testing.T) {
	s := newTestSession()

	warnings := s.SetCommissionSplits([]pricing.CommissionSplit{
		{Name: "Alex", Percent: 30},
		{Name: "Sam", Percent: -5},
	})
	if len(warnings) == 0 {
		t.Fatal("expected a warning for the negative split")
	}

	opts := s.Options()
	if len(opts.CommissionSplits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(opts.CommissionSplits))
	}
	if opts.CommissionSplits[1].Percent != 0 {
		t.Fatalf("negative split not clamped: %v", opts.CommissionSplits[1].Percent)
	}
	if got := s.Result().TotalCommissionPct; got != 30 {
		t.Fatalf("totalCommissionPct = %v, want 30", got)
	}

	// Clearing the splits reverts to the single percentage.
	s.SetCommissionSplits(nil)
	if got := s.Result().TotalCommissionPct; got != s.Options().CommissionPercentage {
		t.Fatalf("totalCommissionPct = %v, want single percentage", got)
	}

	// Split edits are undoable like any other mutation.
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if len(s.Options().CommissionSplits) != 2 {
		t.Fatal("undo did not restore the splits")
	}
}

func TestResult_ReturnsIndependentCopy(t *testing.T) {
	s := newTestSession()
	s.SetCommissionSplits([]pricing.CommissionSplit{{Name: "Alex", Percent: 10}})

	r := s.Result()
	r.CommissionLines[0].Amount = -1

	if s.Result().CommissionLines[0].Amount == -1 {
		t.Fatal("Result leaks internal commission line slice")
	}
}

func mustSet(t *testing.T, s *Session, field, value string) {
	t.Helper()
	if _, err := s.SetField(field, value); err != nil {
		t.Fatalf("SetField(%s, %s): %v", field, value, err)
	}
}
