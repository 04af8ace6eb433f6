package model

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlob_Immutable(t *testing.T) {
	data := []byte("abc")
	blob := NewBlob(data, MIMETypeWebM)
	data[0] = 'x'

	assert.Equal(t, []byte("abc"), blob.Bytes())

	out := blob.Bytes()
	out[1] = 'x'
	assert.Equal(t, []byte("abc"), blob.Bytes())

	read, err := io.ReadAll(blob.Reader())
	require.NoError(t, err)
	assert.Equal(t, "abc", string(read))
	assert.Equal(t, 3, blob.Size())
	assert.Equal(t, MIMETypeWebM, blob.MIMEType())
}

func TestRecordingFilename(t *testing.T) {
	testCases := map[string]string{
		MIMETypeWebMOpus:         "recording.webm",
		MIMETypeWebM:             "recording.webm",
		"audio/ogg; codecs=opus": "recording.ogg",
		"audio/mp4":              "recording.mp4",
		"":                       "recording.webm",
		"garbage":                "recording.webm",
	}

	for mimeType, want := range testCases {
		assert.Equal(t, want, RecordingFilename(mimeType), mimeType)
	}
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeUpload.Valid())
	assert.True(t, ModeRecord.Valid())
	assert.False(t, Mode("stream").Valid())
}
