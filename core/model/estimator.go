// Package model はデータフレームを入出力とする推定器の共通インターフェースを定義する
package model

import (
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

// Fitter は学習可能な推定器のインターフェース
//
// Fit はレシーバを変更せず、学習済みの新しい値 E を返す。
// y はscikit-learnとの互換性のために受け取るだけで、使わない実装もある（nil可）。
type Fitter[E any] interface {
	Fit(X dataframe.DataFrame, y mat.Matrix) (E, error)
}

// WeightExporter は学習済みの値をModelWeightsとして入出力できる推定器のインターフェース
type WeightExporter[E any] interface {
	// ExportWeights は学習済みの値をエクスポート
	ExportWeights() (*ModelWeights, error)

	// ImportWeights は重みから学習済みの推定器を復元
	ImportWeights(weights *ModelWeights) (E, error)
}
