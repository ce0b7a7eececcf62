package tree

import "github.com/pkg/errors"

// ConfigError reports a Structure whose parameters fail validation. It is
// always a caller-level mistake (bad depths, mis-sized chunks, an invalid
// subset) and is returned, never panicked, since construction is the one
// boundary at which the index algebra can still hand control back to the
// caller.
type ConfigError struct {
	cause error
}

func (e *ConfigError) Error() string {
	return e.cause.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.cause
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{cause: errors.Errorf(format, args...)}
}

// ErrUnsupportedSplit3D is returned by Structure.SubsetBBox when the
// structure is 3D; octree subset splitting is not yet supported.
var ErrUnsupportedSplit3D = errors.New("tree: octree subset splitting is not supported")
