package lens

import (
	"sync/atomic"
)

// Session owns the live parameter set and the HSW lookup table of one
// rendering session.
//
// Apply is called from the redraw loop only. Table and Evaluator may be called
// from render workers: the table is published with an atomic pointer swap once
// fully built, and the previous table is simply dropped.
type Session struct {
	cfg        TableConfig
	params     atomic.Pointer[Params]
	table      atomic.Pointer[Table]
	rebuilding atomic.Bool
	builds     atomic.Int64
}

// NewSession creates a session and applies p.
func NewSession(p Params, cfg TableConfig) (*Session, error) {
	if cfg.Bins <= 0 || cfg.Steps <= 0 {
		return nil, ErrTableSize
	}
	s := &Session{cfg: cfg}
	if _, err := s.Apply(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply installs a new parameter set. When the HSW model is active and the
// current table was built from different HSW parameters or spread, the table
// is rebuilt synchronously before Apply returns. It reports whether a rebuild
// happened.
func (s *Session) Apply(p Params) (bool, error) {
	p = p.Normalize()
	prev := s.params.Load()
	s.params.Store(&p)

	if prev == nil || prev.Model != p.Model {
		Logger().Info("lens model active", "model", p.Model.String())
	}

	if p.Model != HSWVoid || s.table.Load().Matches(p) {
		return false, nil
	}

	s.rebuilding.Store(true)
	defer s.rebuilding.Store(false)

	t, err := BuildTable(p, s.cfg)
	if err != nil {
		return false, err
	}
	s.table.Store(t)
	s.builds.Add(1)
	return true, nil
}

// Params returns the current parameters.
func (s *Session) Params() Params {
	if p := s.params.Load(); p != nil {
		return *p
	}
	return DefaultParams(PointMass)
}

// Table returns the published table, or nil if none was built yet.
func (s *Session) Table() *Table {
	return s.table.Load()
}

// Rebuilding reports whether a table rebuild is in progress.
func (s *Session) Rebuilding() bool {
	return s.rebuilding.Load()
}

// Builds returns how many tables this session has built.
func (s *Session) Builds() int {
	return int(s.builds.Load())
}

// TableConfig returns the table sizing of the session.
func (s *Session) TableConfig() TableConfig {
	return s.cfg
}

// Evaluator returns an evaluator for the current parameters. While a rebuild
// is in progress, or if the published table is stale, HSWVoid evaluates to
// zero deflection instead of reading a mismatched table.
func (s *Session) Evaluator() Evaluator {
	p := s.Params()
	var t *Table
	if !s.rebuilding.Load() {
		t = s.table.Load()
	}
	return NewEvaluator(p, t)
}
