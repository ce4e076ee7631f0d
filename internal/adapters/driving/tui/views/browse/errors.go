package browse

import "errors"

// ErrNoSearchService indicates that no search service was provided.
var ErrNoSearchService = errors.New("search service is required")
