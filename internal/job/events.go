package job

// Event is one message on the scheduler's outbound stream. The
// presentation layer consumes events from a single goroutine and owns
// all rendering state; it never reaches into job internals.
type Event interface {
	// EventJobID names the job the event belongs to.
	EventJobID() string
}

// ProgressEvent reports a job's progress percentage. Per job, the
// reported values are non-decreasing and reach exactly 100 before the
// terminal outcome. Across jobs there is no ordering guarantee.
type ProgressEvent struct {
	JobID   string
	Percent int
}

// EventJobID implements Event.
func (e ProgressEvent) EventJobID() string { return e.JobID }

// OutcomeEvent is a job's single terminal event. On success Filename
// carries the output file's base name; on failure ErrorMessage carries
// a stage-prefixed reason suitable for direct display.
type OutcomeEvent struct {
	JobID        string
	Success      bool
	Filename     string
	ErrorMessage string
}

// EventJobID implements Event.
func (e OutcomeEvent) EventJobID() string { return e.JobID }
