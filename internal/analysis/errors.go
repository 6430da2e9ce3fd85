package analysis

import "errors"

var (
	ErrNotFound = errors.New("analysis job not found")
)
