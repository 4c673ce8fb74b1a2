package validator

import "errors"

var (
	// ErrUnsupportedKind is returned by Dispatch when no evaluator is
	// registered for the requested block kind.
	ErrUnsupportedKind = errors.New("unsupported exercise kind")

	// ErrEmptySubmission is returned when the submitted value contains no
	// recognizable answer at all. Distinct from resolver.ErrBlockNotFound so
	// callers can tell "answer something first" from "exercise missing".
	ErrEmptySubmission = errors.New("submission is empty")
)
