// Package occerr defines the error kinds propagated across load and
// executor boundaries. The rasterizer and raycaster cores never return
// errors; they degrade silently per the execution model, so every error
// in this package originates from I/O, (de)serialization, or scene
// loading.
package occerr

import "errors"

// Sentinel error kinds, wrapped with context via fmt.Errorf("...: %w").
var (
	ErrIO                   = errors.New("io error")
	ErrCADImport            = errors.New("cad import error")
	ErrInvalidFileExtension = errors.New("invalid file extension")
	ErrNoLoaderFound        = errors.New("no loader found for file extension")
	ErrSerialization        = errors.New("serialization error")
	ErrDeserialization      = errors.New("deserialization error")
	ErrInvalidMatrix        = errors.New("non-invertible view/projection matrix")
)
