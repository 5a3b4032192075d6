package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError はFit/Transform内で回復されたパニックを表すエラーです。
type PanicError struct {
	// PanicValue は panic() に渡された値
	PanicValue interface{}

	// StackTrace はパニック発生時のスタックトレース
	StackTrace string

	// Operation はパニックを回復した処理名
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String はスタックトレースを含む詳細な文字列を返します。
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s", e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError は現在のスタックトレースを記録したPanicErrorを作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover はdeferで使用し、パニックをエラーに変換します。
// 既にエラーが設定されている場合は、そのエラーをパニック情報でラップします。
//
// 使用例:
//
//	func (a FeatureAugmenter) Transform(X dataframe.DataFrame, y mat.Matrix) (out dataframe.DataFrame, err error) {
//	    defer errors.Recover(&err, "FeatureAugmenter.Transform")
//	    ...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "panic in %s: %v", operation, r)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute は fn を実行し、パニックが発生した場合はPanicErrorとして返します。
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
