package voiceforge

import "time"

// AudioSample describes an uploaded reference recording after server-side
// processing (format conversion, resampling, denoising).
type AudioSample struct {
	// ID is the opaque handle issued by the server.
	ID string `json:"id"`

	// Filename is the original upload filename.
	Filename string `json:"filename"`

	// DurationSeconds is the processed recording length.
	DurationSeconds float64 `json:"duration_seconds"`

	// SampleRate is the processed sample rate in Hz.
	SampleRate int `json:"sample_rate"`

	// IsValid reports whether the recording is usable for cloning.
	// An invalid sample is a successful response carrying a negative
	// judgment, not a transport error.
	IsValid bool `json:"is_valid"`

	// Message is a human-readable validation verdict.
	Message string `json:"message"`
}

// AudioInfo is the processed metadata for an uploaded sample, re-read from
// the stored file rather than echoed from the upload response.
type AudioInfo struct {
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`
	IsValid         bool    `json:"is_valid"`
	Message         string  `json:"message"`
}

// VoiceModel is a named, persisted speaker embedding derived from an
// AudioSample. Once created it is immutable except for deletion.
type VoiceModel struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CreatedAt       time.Time `json:"created_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	Tags            []string  `json:"tags"`
	PreviewURL      string    `json:"preview_url"`
}

// CloneRequest is a request to derive a voice model from an uploaded sample.
type CloneRequest struct {
	// AudioID is the handle of a previously uploaded, valid sample.
	AudioID string `json:"audio_id"`

	// Name labels the resulting model. Required.
	Name string `json:"name"`

	// Tags are free-form labels, unordered.
	Tags []string `json:"tags"`
}

// SpeechRequest is a request to synthesize speech.
//
// Exactly one of VoiceModelID and AudioID should be set; when both are set
// the server prefers the model. Speed is meaningful in [0.5, 2.0] and Pitch
// in [-12, +12] semitones; values are passed through unclamped and the
// server is authoritative on rejection.
type SpeechRequest struct {
	VoiceModelID string  `json:"voice_model_id,omitempty"`
	AudioID      string  `json:"audio_id,omitempty"`
	Text         string  `json:"text"`
	Speed        float64 `json:"speed,omitempty"`
	Pitch        float64 `json:"pitch,omitempty"`

	// SaveVoice asks the server to persist the one-shot voice used for this
	// generation as a model named VoiceName. Ignored on the stream endpoint.
	SaveVoice bool   `json:"save_voice,omitempty"`
	VoiceName string `json:"voice_name,omitempty"`
}

// SpeechResponse is the result of a blocking generation call.
type SpeechResponse struct {
	// AudioURL is the server-relative URL of the rendered audio.
	AudioURL string `json:"audio_url"`

	// DurationSeconds is the rendered audio length.
	DurationSeconds float64 `json:"duration_seconds"`

	// VoiceModelID is set when SaveVoice persisted a new model.
	VoiceModelID string `json:"voice_model_id,omitempty"`
}

// Generation stages reported on the progress stream.
const (
	StageStarting   = "starting"
	StageLoading    = "loading"
	StageGenerating = "generating"
	StageEncoding   = "encoding"
	StageComplete   = "complete"
	StageError      = "error"
)

// ProgressEvent is one decoded unit of the generation progress stream.
type ProgressEvent struct {
	// Stage names the current phase, see the Stage constants.
	Stage string `json:"stage"`

	// Progress is a percentage in [0, 100], non-decreasing within a job.
	Progress int `json:"progress"`

	// Message is a human-readable progress description.
	Message string `json:"message"`

	// AudioURL, when present, points at a playable (possibly partial)
	// result. It may arrive before the terminal event.
	AudioURL string `json:"audio_url,omitempty"`

	// DurationSeconds accompanies the terminal event when known.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// PodcastRequest is a request to render a multi-speaker podcast.
type PodcastRequest struct {
	// Script is the raw screenplay text; the server splits it into
	// speaker turns on "Role: utterance" lines.
	Script string `json:"script"`

	// SpeakerMap maps script roles to voice model IDs.
	SpeakerMap map[string]string `json:"speaker_map"`

	// Title is an optional display title.
	Title string `json:"title,omitempty"`
}

// PodcastSegment is one speaker turn of the rendered podcast, in script order.
type PodcastSegment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// PodcastResponse is the result of a podcast render.
type PodcastResponse struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	URL      string           `json:"url"`
	Duration float64          `json:"duration"`
	Segments []PodcastSegment `json:"segments"`
}
