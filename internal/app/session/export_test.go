package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSink_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewDirSink(dir)

	require.NoError(t, sink.Export(Artifact{Filename: "../escape.txt", Data: []byte("hi")}))
	assert.Equal(t, filepath.Join(dir, "escape.txt"), sink.Written)

	data, err := os.ReadFile(sink.Written)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestSinkFunc(t *testing.T) {
	var got Artifact
	sink := SinkFunc(func(a Artifact) error {
		got = a
		return nil
	})

	require.NoError(t, sink.Export(Artifact{Filename: "a.txt"}))
	assert.Equal(t, "a.txt", got.Filename)
}

func TestWarning_Message(t *testing.T) {
	assert.Equal(t, MessageMicrophoneDenied, WarningMicrophoneDenied.Message())
	assert.Equal(t, MessageRecordingTooShort, WarningRecordingTooShort.Message())
	assert.Equal(t, MessageTranscriptionFailed, WarningTranscriptionFailed.Message())
	assert.Equal(t, MessageEmptyResult, WarningEmptyResult.Message())
	assert.Empty(t, WarningNone.Message())
}
