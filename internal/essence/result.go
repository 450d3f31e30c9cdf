package essence

// ResultKind discriminates the two outcomes of an extraction.
type ResultKind string

const (
	KindSuccess ResultKind = "success"
	KindFailure ResultKind = "failure"
)

// Result is the outcome of running an extractor. Exactly one of the
// payload groups is meaningful, selected by Kind.
type Result struct {
	Kind ResultKind

	// Success payload.
	Essence   Essence
	ModelName string
	// NoContent reports that the image holds nothing worth indexing.
	NoContent bool

	// Failure payload.
	Reason    string
	Retryable bool
}

// Success builds a successful Result.
func Success(e Essence, modelName string, noContent bool) Result {
	return Result{Kind: KindSuccess, Essence: e, ModelName: modelName, NoContent: noContent}
}

// Failure builds a failed Result.
func Failure(reason string, retryable bool) Result {
	return Result{Kind: KindFailure, Reason: reason, Retryable: retryable}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}
