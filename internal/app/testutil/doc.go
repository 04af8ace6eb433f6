// Package testutil provides test doubles shared by the session, API and
// command tests.
//
// MockTranscriber is a testify mock of provider.Transcriber:
//
//	transcriber := testutil.NewMockTranscriber("http")
//	transcriber.On("Transcribe", mock.Anything, mock.Anything).
//	    Return(&provider.Response{Transcript: "hello world"}, nil).Once()
//
// AudioBytes builds recording payloads of an exact size, e.g. to sit just
// below or at the minimum recording size.
package testutil
