// Package datafile provides safe, idempotent writes of experimental data
// into a hierarchical container file.
package datafile

import "errors"

// Common errors
var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrPathCollision = errors.New("path segment occupied by a dataset")
	ErrNameOccupied  = errors.New("name already occupied")
	ErrNotGroup      = errors.New("object is not a group")
	ErrNotDataset    = errors.New("object is not a dataset")
	ErrNotFound      = errors.New("object not found")
)
