package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultNoop    ResultLabel = "noop"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for page operations. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveParseDuration(d time.Duration)
	IncOperation(op string, result ResultLabel)
	AddResourceURLs(n int)
	AddRewrittenURLs(op string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveParseDuration(time.Duration) {}
func (NoopRecorder) IncOperation(string, ResultLabel)   {}
func (NoopRecorder) AddResourceURLs(int)                {}
func (NoopRecorder) AddRewrittenURLs(string, int)       {}
