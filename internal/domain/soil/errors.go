package soil

import "errors"

// ErrQuotaExceeded indicates the advisory provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("advisory quota exceeded")

// ErrNotFound indicates no analysis exists for the requested id.
var ErrNotFound = errors.New("analysis not found")
