package preprocessing

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/featurekit/core/frame"
	"github.com/YuminosukeSato/featurekit/core/parallel"
	"github.com/YuminosukeSato/featurekit/pkg/errors"
)

// 入力列の名前
const (
	ColX1 = "x1"
	ColX2 = "x2"
	ColX3 = "x3"
)

// 比率特徴量の列名
const (
	ColX13 = "x13"
	ColX23 = "x23"
	ColX12 = "x12"
)

const (
	modelName = "FeatureAugmenter"

	defaultCapFactor         = 2.0
	defaultParallelThreshold = 10000
)

// ratioSpec は比率特徴量 name = num / den を表す
type ratioSpec struct {
	name, num, den string
}

var ratioSpecs = [3]ratioSpec{
	{name: ColX13, num: ColX1, den: ColX3},
	{name: ColX23, num: ColX2, den: ColX3},
	{name: ColX12, num: ColX1, den: ColX2},
}

// InputColumns は変換に必要な入力列を返す
func InputColumns() []string {
	return []string{ColX1, ColX2, ColX3}
}

// DerivedColumns はTransformが追加する12列を追加順に返す
func DerivedColumns() []string {
	return []string{
		ColX13, ColX23, ColX12,
		"x1^2", "x2^2", "x3^2",
		"x1^3", "x2^3", "x3^3",
		"log(x1-min(x1)+1)", "log(x2-min(x2)+1)", "log(x3-min(x3)+1)",
	}
}

// AugmenterState はFitで学習された +Inf の置換値
//
// 各値は、学習データにおける比率の +Inf 以外の最大値に倍率（デフォルト2）を掛けたもの。
type AugmenterState struct {
	X13Max float64 `json:"x13_max"`
	X23Max float64 `json:"x23_max"`
	X12Max float64 `json:"x12_max"`
}

func (s AugmenterState) caps() [3]float64 {
	return [3]float64{s.X13Max, s.X23Max, s.X12Max}
}

func stateFromCaps(caps [3]float64) AugmenterState {
	return AugmenterState{X13Max: caps[0], X23Max: caps[1], X12Max: caps[2]}
}

// FitState は X から置換値を学習する（倍率2）
//
// パラメータ:
//   - X: x1, x2, x3 列を含む学習データ（変更されない）
//
// 戻り値:
//   - AugmenterState: 学習された置換値
//   - error: 列が無い場合はMissingColumnError、比率が全て +Inf の場合はEmptyReductionError
func FitState(X dataframe.DataFrame) (AugmenterState, error) {
	return fitState("FitState", X, defaultCapFactor)
}

// Augment は state を使って X に12個の派生特徴量を追加した新しいデータフレームを返す
//
// state が nil の場合は未学習として扱い、比率に +Inf が現れた時点でNotFittedErrorを返す。
//
// パラメータ:
//   - state: FitStateの結果（nil可）
//   - X: x1, x2, x3 列を含むデータ（変更されない）
//
// 戻り値:
//   - dataframe.DataFrame: 元の列の後ろに DerivedColumns() を追加したデータ
//   - error: エラーが発生した場合
func Augment(state *AugmenterState, X dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, _, err := augment("Augment", state, X, defaultParallelThreshold)
	return out, err
}

// inputs は x1, x2, x3 を float64 として読み出したもの
type inputs struct {
	cols [3][]float64
	n    int
}

func (in inputs) col(name string) []float64 {
	switch name {
	case ColX1:
		return in.cols[0]
	case ColX2:
		return in.cols[1]
	default:
		return in.cols[2]
	}
}

func readInputs(op string, X dataframe.DataFrame) (inputs, error) {
	if err := frame.RequireColumns(op, X, InputColumns()...); err != nil {
		return inputs{}, err
	}
	in := inputs{n: X.Nrow()}
	for j, name := range InputColumns() {
		values, err := frame.Floats(X, name)
		if err != nil {
			return inputs{}, errors.Wrap(err, op)
		}
		in.cols[j] = values
	}
	return in, nil
}

func fitState(op string, X dataframe.DataFrame, factor float64) (state AugmenterState, err error) {
	defer errors.Recover(&err, op)

	in, err := readInputs(op, X)
	if err != nil {
		return AugmenterState{}, err
	}

	var caps [3]float64
	ratio := make([]float64, in.n)
	for k, spec := range ratioSpecs {
		divide(in.col(spec.num), in.col(spec.den), ratio, 0, in.n)
		m, ok := maxExcludingPosInf(ratio)
		if !ok {
			return AugmenterState{}, errors.NewEmptyReductionError(op, spec.name)
		}
		caps[k] = m * factor
	}
	return stateFromCaps(caps), nil
}

// augmentStats は1回の変換の記録（ログ用）
type augmentStats struct {
	substituted [3]int
	parallel    bool
}

func augment(op string, state *AugmenterState, X dataframe.DataFrame, threshold int) (out dataframe.DataFrame, stats augmentStats, err error) {
	defer errors.Recover(&err, op)

	in, err := readInputs(op, X)
	if err != nil {
		return dataframe.DataFrame{}, stats, err
	}

	// 対数列の最小値は変換対象のデータから求める
	var mins [3]float64
	if in.n > 0 {
		for j := range in.cols {
			mins[j] = floats.Min(in.cols[j])
		}
	}

	derived := make([][]float64, len(DerivedColumns()))
	for i := range derived {
		derived[i] = make([]float64, in.n)
	}

	stats.parallel = parallel.ParallelizeWithThreshold(in.n, threshold, func(start, end int) {
		for k, spec := range ratioSpecs {
			divide(in.col(spec.num), in.col(spec.den), derived[k], start, end)
		}
		for j, x := range in.cols {
			sq, cu, lg := derived[3+j], derived[6+j], derived[9+j]
			for i := start; i < end; i++ {
				v := x[i]
				sq[i] = v * v
				cu[i] = v * v * v
				lg[i] = math.Log(v - mins[j] + 1)
			}
		}
	})

	if state == nil {
		for k := range ratioSpecs {
			if containsPosInf(derived[k]) {
				return dataframe.DataFrame{}, stats, errors.NewNotFittedError(modelName, "Transform")
			}
		}
	} else {
		caps := state.caps()
		for k := range ratioSpecs {
			stats.substituted[k] = replacePosInf(derived[k], caps[k])
		}
	}

	for k, spec := range ratioSpecs {
		if negInf, nan := countUnsubstituted(derived[k]); negInf+nan > 0 {
			errors.Warn(errors.NewNonFiniteRatioWarning(spec.name, negInf, nan))
		}
	}

	out, err = frame.WithFloatColumns(X, DerivedColumns(), derived)
	if err != nil {
		return dataframe.DataFrame{}, stats, errors.Wrap(err, op)
	}
	return out, stats, nil
}

// divide は out[start:end] に num/den を書き込む。0除算はIEEE 754に従い ±Inf または NaN になる。
func divide(num, den, out []float64, start, end int) {
	for i := start; i < end; i++ {
		out[i] = num[i] / den[i]
	}
}

// maxExcludingPosInf は +Inf と等しくない値の最大値を返す。
// -Inf と NaN は候補に残るが、NaN は比較で最大値にならない。
// 候補が NaN のみの場合は NaN を返す。候補が無い場合は ok=false。
func maxExcludingPosInf(values []float64) (m float64, ok bool) {
	posInf := math.Inf(1)
	for _, v := range values {
		if v == posInf {
			continue
		}
		if !ok || v > m || math.IsNaN(m) {
			m = v
			ok = true
		}
	}
	return m, ok
}

func containsPosInf(values []float64) bool {
	posInf := math.Inf(1)
	for _, v := range values {
		if v == posInf {
			return true
		}
	}
	return false
}

func replacePosInf(values []float64, replacement float64) int {
	posInf := math.Inf(1)
	n := 0
	for i, v := range values {
		if v == posInf {
			values[i] = replacement
			n++
		}
	}
	return n
}

func countUnsubstituted(values []float64) (negInf, nan int) {
	negativeInf := math.Inf(-1)
	for _, v := range values {
		switch {
		case v == negativeInf:
			negInf++
		case math.IsNaN(v):
			nan++
		}
	}
	return negInf, nan
}
