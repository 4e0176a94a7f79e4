package draft

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"alphafarm/pkg/plan/types"
)

// gatedEstimator blocks each query until its revision is released.
type gatedEstimator struct {
	mu    sync.Mutex
	gates map[int]chan float64
	calls int
	fail  error
}

func newGatedEstimator() *gatedEstimator {
	return &gatedEstimator{gates: map[int]chan float64{}}
}

func (g *gatedEstimator) gate(rev int) chan float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[rev]
	if !ok {
		ch = make(chan float64, 1)
		g.gates[rev] = ch
	}
	return ch
}

func (g *gatedEstimator) EstimateYield(ctx context.Context, q YieldQuery) (float64, error) {
	g.mu.Lock()
	g.calls++
	fail := g.fail
	g.mu.Unlock()
	if fail != nil {
		return 0, fail
	}
	select {
	case v := <-g.gate(q.Revision):
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

type fakeSubmitter struct {
	got []types.CreatePlanRequest
	err error
}

func (f *fakeSubmitter) SubmitPlan(_ context.Context, req types.CreatePlanRequest) error {
	f.got = append(f.got, req)
	return f.err
}

func readySession(t *testing.T, est Estimator, sub Submitter) *Session {
	t.Helper()
	s := NewSession(context.Background(), testLands(), est, sub, zaptest.NewLogger(t))
	s.SelectLand(7)
	s.SetIrrigationType("Drip")
	s.UpdateRowField(0, FieldCrop, "Maize")
	s.UpdateRowField(0, FieldSowingDate, "2024-06-10")
	return s
}

func TestSessionAppliesYield(t *testing.T) {
	est := newGatedEstimator()
	s := readySession(t, est, nil)

	s.UpdateRowField(0, FieldAcres, "2")
	rev := s.Draft().Rows[0].Revision
	est.gate(rev) <- 19.4
	s.Wait()

	d := s.Draft()
	require.NotNil(t, d.Rows[0].ExpectedYield)
	assert.Equal(t, 19.4, *d.Rows[0].ExpectedYield)
}

func TestSessionDropsOutOfOrderResponses(t *testing.T) {
	est := newGatedEstimator()
	s := readySession(t, est, nil)

	s.UpdateRowField(0, FieldAcres, "1")
	first := s.Draft().Rows[0].Revision
	s.UpdateRowField(0, FieldAcres, "2")
	second := s.Draft().Rows[0].Revision

	// latest answer lands first, the older one after it
	est.gate(second) <- 20
	est.gate(first) <- 10
	s.Wait()

	d := s.Draft()
	require.NotNil(t, d.Rows[0].ExpectedYield)
	assert.Equal(t, 20.0, *d.Rows[0].ExpectedYield)
}

func TestSessionDropsYieldForRemovedRow(t *testing.T) {
	est := newGatedEstimator()
	s := readySession(t, est, nil)
	s.AddRow()
	s.UpdateRowField(1, FieldCrop, "Ragi")
	s.UpdateRowField(1, FieldSowingDate, "2024-07-01")

	s.UpdateRowField(0, FieldAcres, "1")
	rev := s.Draft().Rows[0].Revision
	s.RemoveRow(0)
	est.gate(rev) <- 8
	s.Wait()

	d := s.Draft()
	require.Len(t, d.Rows, 1)
	assert.Nil(t, d.Rows[0].ExpectedYield)
}

func TestSessionSwallowsEstimatorErrors(t *testing.T) {
	est := newGatedEstimator()
	est.fail = errors.New("upstream down")
	s := readySession(t, est, nil)

	s.UpdateRowField(0, FieldAcres, "2")
	s.Wait()

	d := s.Draft()
	assert.Nil(t, d.Rows[0].ExpectedYield)
	assert.Equal(t, 2.0, d.Rows[0].Acres)
	assert.Equal(t, 1, est.calls)
}

func TestSessionSubmitValidationBlocks(t *testing.T) {
	sub := &fakeSubmitter{}
	s := NewSession(context.Background(), testLands(), nil, sub, nil)

	err := s.Submit(context.Background())
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("land"))
	assert.True(t, s.Errors().Has("land"))
	assert.Empty(t, sub.got)

	s.SelectLand(7)
	assert.Empty(t, s.Errors(), "selecting a land clears errors")
}

func TestSessionSubmitFailureKeepsState(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("Total allocation exceeds remaining land")}
	s := readySession(t, nil, sub)
	s.UpdateRowField(0, FieldAcres, "2")
	before := s.Draft()

	err := s.Submit(context.Background())
	var serr *SubmitError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Total allocation exceeds remaining land", serr.Error())
	assert.Equal(t, before, s.Draft())
	require.Len(t, sub.got, 1)
	assert.Equal(t, uint(7), sub.got[0].LandID)
}

func TestSessionSubmitSuccessResets(t *testing.T) {
	sub := &fakeSubmitter{}
	s := readySession(t, nil, sub)
	s.UpdateRowField(0, FieldAcres, "2.5")
	s.SetNotes("irrigate weekly")

	require.NoError(t, s.Submit(context.Background()))
	require.Len(t, sub.got, 1)
	assert.Equal(t, 2.5, sub.got[0].TotalAcresAllocated)
	assert.Equal(t, "irrigate weekly", sub.got[0].Notes)

	d := s.Draft()
	assert.Nil(t, d.Land)
	require.Len(t, d.Rows, 1)
	assert.Zero(t, d.Rows[0].Acres)
}

func TestSessionWithoutSubmitter(t *testing.T) {
	s := readySession(t, nil, nil)
	s.UpdateRowField(0, FieldAcres, "1")
	assert.ErrorIs(t, s.Submit(context.Background()), ErrNoSubmitter)
}
