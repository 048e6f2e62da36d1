package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidURL      = fmt.Errorf("invalid playlist URL")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Upstream errors
	ErrUpstream            = fmt.Errorf("upstream error")
	ErrUpstreamTimeout     = fmt.Errorf("upstream timed out")
	ErrUpstreamNotFound    = fmt.Errorf("playlist not found upstream")
	ErrUpstreamUnreachable = fmt.Errorf("upstream unreachable")
)
