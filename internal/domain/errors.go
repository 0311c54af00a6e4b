package domain

import "fmt"

// LoadError reports a missing or unreadable source file, or a geometry type
// the pipeline does not recognize.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ProjectionError reports absent or invalid CRS metadata, or an EPSG code the
// transform registry does not cover.
type ProjectionError struct {
	EPSG int
	Err  error
}

func (e *ProjectionError) Error() string {
	if e.EPSG != 0 {
		return fmt.Sprintf("projection EPSG:%d: %v", e.EPSG, e.Err)
	}
	return fmt.Sprintf("projection: %v", e.Err)
}
func (e *ProjectionError) Unwrap() error { return e.Err }

// ParseError reports malformed date text. Unparseable values fail loudly
// rather than coercing to missing, so data-quality problems do not masquerade
// as date-window exclusions.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}
func (e *ParseError) Unwrap() error { return e.Err }

// JoinKeyError reports an identifier that cannot be coerced to numeric on
// either side of the join.
type JoinKeyError struct {
	Side  string // "points" or "table"
	Value string
	Err   error
}

func (e *JoinKeyError) Error() string {
	return fmt.Sprintf("join key on %s side: %q: %v", e.Side, e.Value, e.Err)
}
func (e *JoinKeyError) Unwrap() error { return e.Err }

// WriteError reports an unwritable export destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// EmptyResultWarning marks a zero-row result at an intermediate stage. It is
// surfaced to the caller but never halts the run; downstream stages operate
// on the empty set and the exporter writes a header-only layer.
type EmptyResultWarning struct {
	Stage string
}

func (e *EmptyResultWarning) Error() string { return fmt.Sprintf("%s produced zero rows", e.Stage) }
