package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration is wrapped when a configured duration cannot be
	// applied to the transport.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidCertificate is wrapped when PEM certificate material, or
	// the combined client identity blob, fails to parse.
	ErrInvalidCertificate = errors.New("invalid certificate material")
	// ErrHTTP3Unsupported is returned for [VersionHTTP3]; the net/http
	// transport has no HTTP/3 support.
	ErrHTTP3Unsupported = errors.New("http/3 prior knowledge is not supported by the transport")
	// ErrBuildFailed wraps a failure reported by the transport itself
	// during final configuration. The cause is surfaced verbatim and not
	// decomposed further.
	ErrBuildFailed = errors.New("transport build failed")
)

// BuildError reports which settings group aborted construction. The first
// failure wins; no partially configured client is ever returned.
type BuildError struct {
	Group string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("applying %s settings: %v", e.Group, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
