package retrieval

import "errors"

var (
	// ErrInvalidQuery is returned before any backend call when the query
	// text is empty or blank.
	ErrInvalidQuery = errors.New("invalid query: empty text")

	// ErrRetrievalUnavailable is returned only when both the keyword and
	// the vector backend fail. A single-backend failure degrades instead.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable: all search backends failed")
)
