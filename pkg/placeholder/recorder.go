package placeholder

import "time"

// FetchRecord describes one completed Fetch call.
type FetchRecord struct {
	Endpoint string
	URL      string
	Status   int
	Kind     Kind
	Error    string
	Elapsed  time.Duration
	At       time.Time
}

// Recorder observes fetches. It cannot change their outcome.
type Recorder interface {
	RecordFetch(rec FetchRecord)
}

// RecorderFunc adapts a plain function to Recorder.
type RecorderFunc func(rec FetchRecord)

func (f RecorderFunc) RecordFetch(rec FetchRecord) { f(rec) }
