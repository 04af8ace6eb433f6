package session

import (
	"speech-to-text/internal/app/model"
	"speech-to-text/internal/app/recorder"
)

// Warning identifies the user-facing warning currently shown in place of a transcription
type Warning string

const (
	WarningNone                Warning = ""
	WarningMicrophoneDenied    Warning = "microphone_denied"
	WarningRecordingTooShort   Warning = "recording_too_short"
	WarningTranscriptionFailed Warning = "transcription_failed"
	WarningEmptyResult         Warning = "empty_result"
)

// Messages shown as the transcription text
const (
	MessageMicrophoneDenied    = "⚠️ Please allow microphone access."
	MessageRecordingTooShort   = "⚠️ Recording too short."
	MessageTranscriptionFailed = "⚠️ Failed to transcribe. Try again."
	MessageEmptyResult         = "⚠️ Could not process audio, please try again."

	// AlertNoFileSelected is a blocking alert; it never replaces the transcription
	AlertNoFileSelected = "Please select an audio file"
)

var warningMessages = map[Warning]string{
	WarningMicrophoneDenied:    MessageMicrophoneDenied,
	WarningRecordingTooShort:   MessageRecordingTooShort,
	WarningTranscriptionFailed: MessageTranscriptionFailed,
	WarningEmptyResult:         MessageEmptyResult,
}

// Message returns the text displayed for w
func (w Warning) Message() string {
	return warningMessages[w]
}

// State is a point-in-time copy of the session for presentation
type State struct {
	Mode           model.Mode     `json:"mode"`
	Loading        bool           `json:"loading"`
	Transcription  string         `json:"transcription"`
	Warning        Warning        `json:"warning,omitempty"`
	RecordingState recorder.State `json:"recording_state"`
	Recording      *RecordingInfo `json:"recording,omitempty"`
	History        []model.Result `json:"history"`
}

// RecordingInfo describes the held recording
type RecordingInfo struct {
	Size     int    `json:"size"`
	MIMEType string `json:"mime_type"`
}
