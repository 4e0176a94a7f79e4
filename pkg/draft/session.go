package draft

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"alphafarm/pkg/plan/types"
)

// Estimator returns the total expected yield (quintals) for a query.
type Estimator interface {
	EstimateYield(ctx context.Context, q YieldQuery) (float64, error)
}

// Submitter persists a crop plan. Its error text is shown to the farmer as is.
type Submitter interface {
	SubmitPlan(ctx context.Context, req types.CreatePlanRequest) error
}

var ErrNoSubmitter = errors.New("no plan submitter configured")

// SubmitError carries the server's rejection message.
type SubmitError struct {
	Detail string
	Err    error
}

func (e *SubmitError) Error() string { return e.Detail }
func (e *SubmitError) Unwrap() error { return e.Err }

// Session owns one farmer's draft. Mutators return immediately; yield
// lookups run on their own goroutines and write back under the lock.
type Session struct {
	ctx context.Context
	est Estimator
	sub Submitter
	log *zap.Logger

	mu    sync.Mutex
	draft PlanDraft
	errs  Errors

	wg sync.WaitGroup
}

func NewSession(ctx context.Context, lands []LandInfo, est Estimator, sub Submitter, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{ctx: ctx, est: est, sub: sub, log: log, draft: New(lands)}
}

func (s *Session) Draft() PlanDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.clone()
}

// Errors returns the validation errors from the last Submit attempt.
func (s *Session) Errors() Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Errors, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// Wait blocks until every dispatched yield lookup has returned.
func (s *Session) Wait() { s.wg.Wait() }

func (s *Session) SelectLand(landID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.draft.Land
	s.draft = s.draft.SelectLand(landID)
	if s.draft.Land != prev {
		s.errs = nil
	}
}

func (s *Session) AddRow() {
	s.mu.Lock()
	s.draft = s.draft.AddRow()
	s.mu.Unlock()
}

func (s *Session) RemoveRow(index int) {
	s.mu.Lock()
	s.draft = s.draft.RemoveRow(index)
	s.mu.Unlock()
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	s.draft = s.draft.SetNotes(notes)
	s.mu.Unlock()
}

func (s *Session) UpdateRowField(index int, field Field, value string) {
	s.mu.Lock()
	var q *YieldQuery
	s.draft, q = s.draft.UpdateRowField(index, field, value)
	s.mu.Unlock()
	if q != nil {
		s.dispatch(*q)
	}
}

func (s *Session) SetIrrigationType(value string) {
	s.mu.Lock()
	var qs []YieldQuery
	s.draft, qs = s.draft.SetIrrigationType(value)
	s.mu.Unlock()
	for _, q := range qs {
		s.dispatch(q)
	}
}

func (s *Session) dispatch(q YieldQuery) {
	if s.est == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		v, err := s.est.EstimateYield(s.ctx, q)
		if err != nil {
			s.log.Warn("yield estimate failed",
				zap.Int("row", q.RowID), zap.String("crop", q.Crop), zap.Error(err))
			return
		}
		s.mu.Lock()
		var applied bool
		s.draft, applied = s.draft.ApplyYield(q.RowID, q.Revision, v)
		s.mu.Unlock()
		if !applied {
			s.log.Debug("stale yield estimate dropped", zap.Int("row", q.RowID), zap.Int("revision", q.Revision))
		}
	}()
}

// Submit validates and sends the draft. Validation failures return Errors;
// a rejected submission returns *SubmitError. Either way the draft is kept.
// On success the draft is reset.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	d := s.draft.clone()
	errs := d.Validate()
	s.errs = errs
	s.mu.Unlock()

	if len(errs) > 0 {
		return errs
	}
	if s.sub == nil {
		return ErrNoSubmitter
	}
	if err := s.sub.SubmitPlan(ctx, d.BuildSubmissionPayload()); err != nil {
		return &SubmitError{Detail: err.Error(), Err: err}
	}

	s.mu.Lock()
	s.draft = s.draft.Reset()
	s.errs = nil
	s.mu.Unlock()
	return nil
}
