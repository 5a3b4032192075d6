package model

import (
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Transform は入力を変更せずに、変換後の新しいデータフレームを返す
	Transform(X dataframe.DataFrame, y mat.Matrix) (dataframe.DataFrame, error)
}

// FitTransformer は学習と変換の両方を提供する推定器のインターフェース
type FitTransformer[E any] interface {
	Fitter[E]
	Transformer

	// FitTransform はFitとTransformを同じデータに対して実行する
	FitTransform(X dataframe.DataFrame, y mat.Matrix) (E, dataframe.DataFrame, error)
}
