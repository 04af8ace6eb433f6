package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission sources
const (
	SourceUpload    = "upload"
	SourceRecording = "recording"
)

// Outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeFailure  = "failure"
	OutcomeTooShort = "too_short"
	OutcomeDenied   = "denied"
	OutcomeStarted  = "started"
)

// Metrics holds the transcription and recording collectors
type Metrics struct {
	SubmissionTime *prometheus.HistogramVec
	Submissions    *prometheus.CounterVec
	Recordings     *prometheus.CounterVec
	RecordingBytes prometheus.Histogram
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SubmissionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stt",
			Subsystem: "transcription",
			Name:      "request_seconds",
			Help:      "Time spent waiting for the transcription backend.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"backend"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stt",
			Subsystem: "transcription",
			Name:      "submissions_total",
			Help:      "Transcription submissions by source and outcome.",
		}, []string{"source", "outcome"}),
		Recordings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stt",
			Subsystem: "recorder",
			Name:      "recordings_total",
			Help:      "Recording lifecycle events by outcome.",
		}, []string{"outcome"}),
		RecordingBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stt",
			Subsystem: "recorder",
			Name:      "recording_bytes",
			Help:      "Size of finalized recordings in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.SubmissionTime)
		reg.MustRegister(m.Submissions)
		reg.MustRegister(m.Recordings)
		reg.MustRegister(m.RecordingBytes)
	}

	return m
}

// ObserveSubmission records one transcription request
func (m *Metrics) ObserveSubmission(backend, source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SubmissionTime.WithLabelValues(backend).Observe(elapsed.Seconds())
	m.Submissions.WithLabelValues(source, outcome).Inc()
}

// ObserveRecording records a recording lifecycle event. size is ignored
// for events that carry no audio.
func (m *Metrics) ObserveRecording(outcome string, size int) {
	if m == nil {
		return
	}
	m.Recordings.WithLabelValues(outcome).Inc()
	if size > 0 {
		m.RecordingBytes.Observe(float64(size))
	}
}
