// Package quote owns the live quoting state: job parameters, options and
// rate card, with field-level setters that snapshot and recompute as one
// transaction.
package quote

import (
	"fmt"

	"github.com/ventworks/quotecalc/internal/history"
	"github.com/ventworks/quotecalc/internal/pricing"
)

const historyCapacity = 20

// Warnings collects non-fatal messages raised while applying a mutation:
// clamped values, auto-corrected invariants, recovered calculation failures.
type Warnings []string

func (w *Warnings) addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// Session is the single source of truth for one quote. Every committed
// mutation pushes an undo snapshot and recomputes the full result set.
// Session is not safe for concurrent use; the caller serializes access.
type Session struct {
	config  pricing.PricingConfig
	params  pricing.JobParameters
	options pricing.Options
	hist    *history.History
	result  pricing.ResultSet
}

// NewSession seeds the history with the initial state and computes the
// first result set.
func NewSession(config pricing.PricingConfig, params pricing.JobParameters, options pricing.Options) *Session {
	var w Warnings
	enforceCrewInvariant(&params, &w)

	s := &Session{
		config:  config,
		params:  params,
		options: options.Clone(),
		hist:    history.New(historyCapacity),
	}
	s.hist.Push(history.NewSnapshot(s.params, s.options))
	s.result = pricing.Compute(s.params, s.config, s.options)
	return s
}

// SetField parses and applies one named input field, clamping out-of-range
// values to their declared minimum. The snapshot push and recompute happen
// even when the value is unchanged: every declared input event recalculates.
// Only an unknown field name is an error.
func (s *Session) SetField(name, raw string) (Warnings, error) {
	setter, ok := fieldSetters[name]
	if !ok {
		return nil, fmt.Errorf("unknown field %q", name)
	}

	params := s.params
	options := s.options.Clone()

	var w Warnings
	setter(&params, &options, raw, &w)
	enforceCrewInvariant(&params, &w)

	s.commit(params, options, &w)
	return w, nil
}

// SetCommissionSplits replaces the named commission splits wholesale. An
// empty list reverts to the single commission percentage. Negative split
// percentages clamp to zero; the sum is intentionally not normalized to 100.
func (s *Session) SetCommissionSplits(splits []pricing.CommissionSplit) Warnings {
	options := s.options.Clone()

	var w Warnings
	cleaned := make([]pricing.CommissionSplit, 0, len(splits))
	for _, split := range splits {
		if split.Percent < 0 {
			w.addf("commission split %q cannot be negative, using 0", split.Name)
			split.Percent = 0
		}
		cleaned = append(cleaned, split)
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}
	options.CommissionSplits = cleaned

	s.commit(s.params, options, &w)
	return w
}

// Undo restores the previous snapshot and recomputes against the live rate
// card. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot and recomputes against the live rate card.
func (s *Session) Redo() bool {
	snap, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// UpdateConfig replaces the live rate card and recomputes. Rate edits are
// not undoable, so no snapshot is pushed.
func (s *Session) UpdateConfig(config pricing.PricingConfig) Warnings {
	s.config = config
	var w Warnings
	s.recompute(&w)
	return w
}

// Config returns the live rate card.
func (s *Session) Config() pricing.PricingConfig { return s.config }

// Params returns a copy of the live job parameters.
func (s *Session) Params() pricing.JobParameters { return s.params }

// Options returns a deep copy of the live options.
func (s *Session) Options() pricing.Options { return s.options.Clone() }

// Result returns a copy of the latest result set.
func (s *Session) Result() pricing.ResultSet {
	r := s.result
	if len(r.CommissionLines) > 0 {
		lines := make([]pricing.CommissionLine, len(r.CommissionLines))
		copy(lines, r.CommissionLines)
		r.CommissionLines = lines
	}
	return r
}

func (s *Session) commit(params pricing.JobParameters, options pricing.Options, w *Warnings) {
	s.params = params
	s.options = options
	s.hist.Push(history.NewSnapshot(s.params, s.options))
	s.recompute(w)
}

func (s *Session) restore(snap history.Snapshot) {
	s.params = snap.Params
	s.options = snap.Options.Clone()
	var w Warnings
	s.recompute(&w)
}

// recompute runs the engine, keeping the previous result set intact if the
// calculation fails unexpectedly.
func (s *Session) recompute(w *Warnings) {
	defer func() {
		if r := recover(); r != nil {
			w.addf("calculation failed, previous results kept: %v", r)
		}
	}()
	s.result = pricing.Compute(s.params, s.config, s.options)
}

// enforceCrewInvariant guarantees a job always has someone to price: zero
// workers is only allowed when at least one hood is being cleaned.
func enforceCrewInvariant(params *pricing.JobParameters, w *Warnings) {
	if params.Workers == 0 && params.LargeHoods+params.SmallHoods == 0 {
		params.Workers = 1
		w.addf("a job needs at least one worker or one hood, workers set to 1")
	}
}
