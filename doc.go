// Package featurekit adds engineered features to tabular data before it is
// handed to a predictive model.
//
// The main entry point is preprocessing.FeatureAugmenter. Given a table with
// the numeric columns x1, x2 and x3, it appends twelve derived columns:
//
//   - ratios x13 = x1/x3, x23 = x2/x3 and x12 = x1/x2
//   - squares x1^2, x2^2, x3^2
//   - cubes x1^3, x2^3, x3^3
//   - shifted logs log(xi - min(xi) + 1)
//
// Division by zero follows IEEE 754. During Fit the augmenter learns, per
// ratio, twice the largest value that is not +Inf, and Transform replaces
// every +Inf with that cap. -Inf and NaN are left untouched and reported as
// warnings.
//
// # Quick Start
//
//	train := dataframe.New(
//	    series.New([]float64{1, 2, 0}, series.Float, "x1"),
//	    series.New([]float64{1, 1, 1}, series.Float, "x2"),
//	    series.New([]float64{1, 0, 0}, series.Float, "x3"),
//	)
//
//	aug, err := preprocessing.NewFeatureAugmenter().Fit(train, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := aug.Transform(train, nil)
//
// FeatureAugmenter is an immutable value. Fit returns a fitted copy and never
// changes its receiver, so a fitted augmenter can be shared between
// goroutines.
//
// # Packages
//
//   - preprocessing: FeatureAugmenter and the pure FitState/Augment functions
//   - core/frame: helpers between gota dataframes and gonum matrices
//   - core/model: estimator interfaces and ModelWeights serialization
//   - core/parallel: row-range parallelization
//   - pkg/errors: error types, panic recovery and warnings
//   - pkg/log: structured logging on zerolog and slog
package featurekit
