package domain

import (
	"errors"
	"fmt"
)

// Fatal pipeline conditions. Invalid rows are not errors; they are dropped
// and counted in DropStats.
var (
	ErrInputUnreadable = errors.New("input unreadable")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrEmptyDataset    = errors.New("no valid records")
	ErrOutputWrite     = errors.New("output write failed")
)

// Pipeline stage names used in StageError.
const (
	StageExtract  = "extract"
	StageLoad     = "load"
	StageEnrich   = "enrich"
	StageAssemble = "assemble"
	StageWrite    = "write"
)

// StageError names the pipeline stage a fatal error came from.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage name. It returns nil for a nil err.
func NewStageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
