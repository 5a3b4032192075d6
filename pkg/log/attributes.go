package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "FeatureAugmenter".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
)

// Feature engineering context.
const (
	// ColumnKey names the column a record refers to.
	ColumnKey = "feature.column"

	// CapKey records a fitted +Inf replacement value.
	CapKey = "feature.cap"

	// SubstitutedKey records how many +Inf values were replaced.
	SubstitutedKey = "feature.substituted"

	// ParallelKey reports whether the row-parallel path was taken.
	ParallelKey = "perf.parallel"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
)
