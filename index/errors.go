package index

import "errors"

// Sentinel errors returned by the Index's public operations. Wrap with
// fmt.Errorf("%w: ...", Err...) at the call site and discriminate with
// errors.Is.
var (
	// ErrInvalidInput is returned by New, NewFromText and AddDocument when a
	// precondition on stop words, a document id, or a document token is
	// violated.
	ErrInvalidInput = errors.New("index: invalid input")

	// ErrInvalidQuery is returned when a query contains an empty token, a
	// double minus, or a control byte. Detected before any index lookup.
	ErrInvalidQuery = errors.New("index: invalid query")

	// ErrUnknownDocument is returned by MatchDocument and
	// GetWordFrequencies when the requested id is not present.
	ErrUnknownDocument = errors.New("index: unknown document")
)
