// Package repository defines sentinel errors shared across repositories so
// higher layers can distinguish failure cases without string matching.
package repository

import "errors"

// ErrNotFound is returned by conditional writes when the target row does not
// exist (reads return nil, nil for missing rows instead).
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned by compare-and-commit writes when a
// concurrent writer changed the row between load and commit. Nothing was
// written; callers retry from a fresh load.
var ErrVersionConflict = errors.New("version conflict")
