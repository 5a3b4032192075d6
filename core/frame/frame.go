// Package frame provides helpers for named-column tables backed by gota dataframes.
package frame

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featurekit/pkg/errors"
)

// RequireColumns checks that df is valid and contains every name.
// The first absent name is reported as a MissingColumnError.
func RequireColumns(op string, df dataframe.DataFrame, names ...string) error {
	if df.Err != nil {
		return errors.Wrapf(df.Err, "%s: invalid dataframe", op)
	}
	available := df.Names()
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := present[name]; !ok {
			return errors.NewMissingColumnError(op, name, available)
		}
	}
	return nil
}

// Floats returns a fresh float64 copy of the named column.
// Non-float columns are converted by gota; unparsable values become NaN.
func Floats(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, errors.Wrapf(col.Err, "column %q", name)
	}
	return col.Float(), nil
}

// WithFloatColumns returns a copy of df with one float column per name.
// Existing columns with the same name are replaced in place, new ones are
// appended in the given order. df itself is left untouched.
func WithFloatColumns(df dataframe.DataFrame, names []string, cols [][]float64) (dataframe.DataFrame, error) {
	if len(names) != len(cols) {
		return dataframe.DataFrame{}, errors.NewDimensionError("frame.WithFloatColumns", len(names), len(cols), 1)
	}
	out := df
	for i, name := range names {
		out = out.Mutate(series.New(cols[i], series.Float, name))
		if out.Err != nil {
			return dataframe.DataFrame{}, errors.Wrapf(out.Err, "adding column %q", name)
		}
	}
	return out, nil
}

// FromMatrix builds a float dataframe from X, naming its columns in order.
func FromMatrix(X mat.Matrix, names []string) (dataframe.DataFrame, error) {
	r, c := X.Dims()
	if len(names) != c {
		return dataframe.DataFrame{}, errors.NewDimensionError("frame.FromMatrix", c, len(names), 1)
	}
	seen := make(map[string]struct{}, c)
	cols := make([]series.Series, c)
	for j, name := range names {
		if _, dup := seen[name]; dup {
			return dataframe.DataFrame{}, errors.NewValidationError("names", "column names must be unique", name)
		}
		seen[name] = struct{}{}

		values := make([]float64, r)
		for i := 0; i < r; i++ {
			values[i] = X.At(i, j)
		}
		cols[j] = series.New(values, series.Float, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "frame.FromMatrix")
	}
	return df, nil
}

// ToMatrix copies every column of df, in order, into a dense float matrix.
func ToMatrix(df dataframe.DataFrame) (*mat.Dense, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "frame.ToMatrix")
	}
	r, c := df.Nrow(), df.Ncol()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "frame.ToMatrix")
	}
	out := mat.NewDense(r, c, nil)
	for j, name := range df.Names() {
		values, err := Floats(df, name)
		if err != nil {
			return nil, err
		}
		out.SetCol(j, values)
	}
	return out, nil
}
