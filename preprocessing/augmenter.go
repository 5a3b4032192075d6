// Package preprocessing は予測モデルに渡す前のデータ前処理を提供する
package preprocessing

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featurekit/core/model"
	"github.com/YuminosukeSato/featurekit/pkg/errors"
	"github.com/YuminosukeSato/featurekit/pkg/log"
)

const weightsVersion = "1.0"

var (
	_ model.FitTransformer[FeatureAugmenter] = FeatureAugmenter{}
	_ model.WeightExporter[FeatureAugmenter] = FeatureAugmenter{}
)

// FeatureAugmenter はscikit-learn互換の特徴量追加変換器
// x1, x2, x3 から比率・2乗・3乗・対数の12列を追加する
//
// FeatureAugmenter は不変な値として扱う。Fit はレシーバを変更せず、学習済みの新しい値を返す。
// そのため学習済みの値は複数のgoroutineから同時にTransformしてよい。
// ゼロ値は倍率2・並列化無しの未学習の変換器として使える。
type FeatureAugmenter struct {
	capFactor         float64
	parallelThreshold int
	logger            log.Logger

	// optErr はオプションの検証エラー。Fit/Transform で返す
	optErr error

	state *AugmenterState
}

// NewFeatureAugmenter は新しい未学習のFeatureAugmenterを作成する
//
// パラメータ:
//   - opts: WithCapFactor, WithParallelThreshold, WithLogger
//
// 戻り値:
//   - FeatureAugmenter: 未学習の変換器
//
// 使用例:
//
//	aug, err := preprocessing.NewFeatureAugmenter().Fit(train, nil)
//	augmented, err := aug.Transform(test, nil)
func NewFeatureAugmenter(opts ...Option) FeatureAugmenter {
	a := FeatureAugmenter{
		capFactor:         defaultCapFactor,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Fit は学習データから比率の +Inf 置換値を学習する
//
// パラメータ:
//   - X: x1, x2, x3 列を含む学習データ（変更されない）
//   - y: 使用しない（nil可）
//
// 戻り値:
//   - FeatureAugmenter: 置換値を保持した学習済みの変換器
//   - error: エラーが発生した場合。レシーバはそのまま返す
func (a FeatureAugmenter) Fit(X dataframe.DataFrame, y mat.Matrix) (FeatureAugmenter, error) {
	if a.optErr != nil {
		return a, a.optErr
	}

	state, err := fitState(modelName+".Fit", X, a.factor())
	if err != nil {
		return a, err
	}

	logger := a.getLogger().With(log.OperationKey, log.OperationFit)
	logger.Debug("Fitted ratio caps", log.SamplesKey, X.Nrow())
	for k, c := range state.caps() {
		logger.Debug("Fitted ratio cap", log.ColumnKey, ratioSpecs[k].name, log.CapKey, c)
	}

	return a.WithState(state), nil
}

// Transform は X に12個の派生特徴量を追加した新しいデータフレームを返す
//
// 比率列の +Inf は学習済みの置換値で置き換える。-Inf と NaN はそのまま残る。
// 対数列の最小値は X 自身から求めるため、学習データには依存しない。
//
// パラメータ:
//   - X: x1, x2, x3 列を含むデータ（変更されない）
//   - y: 使用しない（nil可）
//
// 戻り値:
//   - dataframe.DataFrame: 元の列の後ろに DerivedColumns() を追加したデータ
//   - error: 列が無い場合はMissingColumnError、未学習で +Inf が現れた場合はNotFittedError
func (a FeatureAugmenter) Transform(X dataframe.DataFrame, y mat.Matrix) (dataframe.DataFrame, error) {
	if a.optErr != nil {
		return dataframe.DataFrame{}, a.optErr
	}

	out, stats, err := augment(modelName+".Transform", a.state, X, a.parallelThreshold)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	a.getLogger().Debug("Added derived features",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, X.Nrow(),
		log.FeaturesKey, out.Ncol(),
		log.SubstitutedKey, stats.substituted[0]+stats.substituted[1]+stats.substituted[2],
		log.ParallelKey, stats.parallel,
	)
	return out, nil
}

// FitTransform は X で学習し、同じ X を変換する
//
// 戻り値:
//   - FeatureAugmenter: 学習済みの変換器
//   - dataframe.DataFrame: 変換されたデータ
//   - error: エラーが発生した場合
func (a FeatureAugmenter) FitTransform(X dataframe.DataFrame, y mat.Matrix) (FeatureAugmenter, dataframe.DataFrame, error) {
	fitted, err := a.Fit(X, y)
	if err != nil {
		return a, dataframe.DataFrame{}, err
	}
	out, err := fitted.Transform(X, y)
	if err != nil {
		return a, dataframe.DataFrame{}, err
	}
	fitted.getLogger().Debug("Fit and transformed",
		log.OperationKey, log.OperationFitTransform,
		log.SamplesKey, X.Nrow(),
	)
	return fitted, out, nil
}

// WithState は state を保持した学習済みの変換器を返す
func (a FeatureAugmenter) WithState(state AugmenterState) FeatureAugmenter {
	a.state = &state
	return a
}

// State は学習済みの置換値を返す。未学習の場合は false
func (a FeatureAugmenter) State() (AugmenterState, bool) {
	if a.state == nil {
		return AugmenterState{}, false
	}
	return *a.state, true
}

// IsFitted は学習済みかどうかを返す
func (a FeatureAugmenter) IsFitted() bool {
	return a.state != nil
}

// GetParams は変換器のパラメータを取得する
func (a FeatureAugmenter) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"cap_factor":         a.factor(),
		"parallel_threshold": a.parallelThreshold,
	}
}

// ExportWeights は学習済みの置換値をModelWeightsとしてエクスポートする
func (a FeatureAugmenter) ExportWeights() (*model.ModelWeights, error) {
	if a.state == nil {
		return nil, errors.NewNotFittedError(modelName, "ExportWeights")
	}
	caps := a.state.caps()
	return &model.ModelWeights{
		ModelType:    modelName,
		Version:      weightsVersion,
		Coefficients: caps[:],
		Features:     []string{ColX13, ColX23, ColX12},
		Hyperparameters: map[string]interface{}{
			"cap_factor": a.factor(),
		},
		IsFitted: true,
	}, nil
}

// ImportWeights はModelWeightsから置換値を読み込み、学習済みの変換器を返す
// ハイパーパラメータに cap_factor があれば、それも引き継ぐ
func (a FeatureAugmenter) ImportWeights(weights *model.ModelWeights) (FeatureAugmenter, error) {
	if weights == nil {
		return a, errors.NewValidationError("weights", "must not be nil", nil)
	}
	if weights.ModelType != modelName {
		return a, errors.NewValidationError("model_type", "unexpected model type", weights.ModelType)
	}
	if err := weights.Validate(); err != nil {
		return a, errors.NewValidationError("weights", err.Error(), weights.ModelType)
	}
	if !weights.IsFitted {
		return a, errors.NewNotFittedError(modelName, "ImportWeights")
	}
	if len(weights.Coefficients) != len(ratioSpecs) {
		return a, errors.NewValidationError("coefficients", "expected one value per ratio column", len(weights.Coefficients))
	}
	for k, name := range weights.Features {
		if name != ratioSpecs[k].name {
			return a, errors.NewValidationError("features", "unexpected feature order", weights.Features)
		}
	}

	imported := a
	if f, ok := weights.Hyperparameters["cap_factor"].(float64); ok {
		WithCapFactor(f)(&imported)
		if imported.optErr != nil {
			return a, imported.optErr
		}
	}
	var caps [3]float64
	copy(caps[:], weights.Coefficients)
	return imported.WithState(stateFromCaps(caps)), nil
}

// String は変換器の文字列表現を返す
func (a FeatureAugmenter) String() string {
	if a.state == nil {
		return fmt.Sprintf("FeatureAugmenter(cap_factor=%g)", a.factor())
	}
	return fmt.Sprintf("FeatureAugmenter(cap_factor=%g, x13_max=%g, x23_max=%g, x12_max=%g)",
		a.factor(), a.state.X13Max, a.state.X23Max, a.state.X12Max)
}

func (a FeatureAugmenter) factor() float64 {
	if a.capFactor == 0 {
		return defaultCapFactor
	}
	return a.capFactor
}

func (a FeatureAugmenter) getLogger() log.Logger {
	if a.logger != nil {
		return a.logger
	}
	return log.GetLoggerWithName("preprocessing.augmenter").With(log.ModelNameKey, modelName)
}
