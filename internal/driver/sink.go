package driver

// Stage is a step of the per-file pipeline.
type Stage string

const (
	StageLoad    Stage = "load"
	StageParse   Stage = "parse"
	StageInspect Stage = "inspect"
	StageCorrect Stage = "correct"
	StageWrite   Stage = "write"
)

// Status of a stage.
type Status uint8

const (
	StatusStarted Status = iota
	StatusDone
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusStarted:
		return "started"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Event is a progress notification for one file.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	// Offenses is set on StageInspect/StatusDone.
	Offenses int
}

// Sink receives progress events. It is called from worker goroutines and
// must be safe for concurrent use.
type Sink func(Event)

func (s Sink) emit(ev Event) {
	if s != nil {
		s(ev)
	}
}
