package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/featurekit/pkg/errors"
)

func TestMaxExcludingPosInf(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()

	tests := []struct {
		name   string
		values []float64
		want   float64
		wantOK bool
	}{
		{"finite", []float64{1, 5, 3}, 5, true},
		{"skips +Inf", []float64{1, inf, 3}, 3, true},
		{"keeps -Inf", []float64{math.Inf(-1), inf}, math.Inf(-1), true},
		{"NaN never wins", []float64{nan, 2, nan, 1}, 2, true},
		{"NaN first", []float64{nan, -4}, -4, true},
		{"only +Inf", []float64{inf, inf}, 0, false},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := maxExcludingPosInf(tt.values)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	got, ok := maxExcludingPosInf([]float64{nan, inf, nan})
	assert.True(t, ok)
	assert.True(t, math.IsNaN(got))
}

func TestReplacePosInf(t *testing.T) {
	values := []float64{math.Inf(1), 1, math.Inf(-1), math.Inf(1)}
	n := replacePosInf(values, 7)

	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{7, 1, math.Inf(-1), 7}, values)
	assert.False(t, containsPosInf(values))
}

func TestCountUnsubstituted(t *testing.T) {
	negInf, nan := countUnsubstituted([]float64{math.Inf(-1), math.NaN(), 1, math.NaN(), math.Inf(1)})
	assert.Equal(t, 1, negInf)
	assert.Equal(t, 2, nan)
}

func TestFitStateAndAugment(t *testing.T) {
	state, err := FitState(exampleFrame())
	require.NoError(t, err)
	assert.Equal(t, AugmenterState{X13Max: 2, X23Max: 2, X12Max: 4}, state)

	out, err := Augment(&state, exampleFrame())
	require.NoError(t, err)

	viaValue, err := NewFeatureAugmenter().WithState(state).Transform(exampleFrame(), nil)
	require.NoError(t, err)
	for _, name := range DerivedColumns() {
		assertFloats(t, viaValue.Col(name).Float(), out.Col(name).Float(), name)
	}

	_, err = Augment(nil, exampleFrame())
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = FitState(exampleFrame().Drop(ColX3))
	var colErr *errors.MissingColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "FitState", colErr.Op)
}

func TestFitState_NaNOnlyCandidates(t *testing.T) {
	// x13 は 0/0 と 1/0 だけなので候補は NaN のみ、x23 は -Inf のみ
	state, err := FitState(newFrame([]float64{0, 1}, []float64{-1, -1}, []float64{0, 0}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(state.X13Max))
	assert.True(t, math.IsInf(state.X23Max, -1))
	assert.Equal(t, 0.0, state.X12Max)
}

func TestDerivedColumns(t *testing.T) {
	cols := DerivedColumns()
	require.Len(t, cols, 12)
	assert.Equal(t, []string{ColX13, ColX23, ColX12}, cols[:3])
	assert.Equal(t, "log(x3-min(x3)+1)", cols[11])

	// 呼び出し側での変更が影響しない
	cols[0] = "changed"
	assert.Equal(t, ColX13, DerivedColumns()[0])
}
