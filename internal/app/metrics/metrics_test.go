package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSubmission("http", SourceUpload, OutcomeSuccess, 2*time.Second)
	m.ObserveSubmission("http", SourceUpload, OutcomeSuccess, time.Second)
	m.ObserveSubmission("http", SourceRecording, OutcomeEmpty, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(SourceUpload, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(SourceRecording, OutcomeEmpty)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SubmissionTime))
}

func TestObserveRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRecording(OutcomeStarted, 0)
	m.ObserveRecording(OutcomeTooShort, 500)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recordings.WithLabelValues(OutcomeStarted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recordings.WithLabelValues(OutcomeTooShort)))

	count, err := testutil.GatherAndCount(reg, "stt_recorder_recording_bytes")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("http", SourceUpload, OutcomeFailure, time.Second)
		m.ObserveRecording(OutcomeDenied, 0)
	})
}

func TestCollectorsHaveHelp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSubmission("http", SourceUpload, OutcomeSuccess, time.Second)
	m.ObserveRecording(OutcomeSuccess, 2000)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 4)
	for _, family := range families {
		assert.NotEmpty(t, family.GetHelp(), family.GetName())
	}

	problems, err := testutil.GatherAndLint(reg)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
