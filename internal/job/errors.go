package job

import (
	"errors"
	"fmt"
)

// ErrInvalidURL is returned by Submit when the input does not look like
// a URL at all. It is the only synchronous failure mode.
var ErrInvalidURL = errors.New("invalid URL")

// Stage names the pipeline stage a job failed in.
type Stage int

const (
	StageFetch Stage = iota
	StageRecognition
	StageTagging
	StageConvert
)

// Label returns the user-facing error prefix for the stage.
func (s Stage) Label() string {
	switch s {
	case StageFetch:
		return "Download Error"
	case StageRecognition:
		return "Recognition Error"
	case StageTagging:
		return "Tagging Error"
	case StageConvert:
		return "Convert Error"
	default:
		return "Error"
	}
}

// StageError wraps a pipeline failure with the stage it occurred in, so
// outcomes can tell the user which part of the job broke.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements error.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage.Label(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error { return e.Err }
