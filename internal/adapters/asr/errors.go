package asr

import "errors"

var (
	// ErrTranscription indicates the speech recognition engine failed to
	// produce a transcript for the submitted audio.
	ErrTranscription = errors.New("transcription failed")

	// ErrUnsupportedAudio indicates the audio file extension is not in the
	// accepted set.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
)
