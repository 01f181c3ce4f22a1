package studio

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

// Targets identify which logical pipeline node owns the active job.
const (
	// TargetVoiceDNA is the clone step.
	TargetVoiceDNA = "voice-dna"

	// TargetOutput is the speech generation step.
	TargetOutput = "output"
)

// PipelineState is a point-in-time snapshot of the pipeline, returned by
// value so presentation code can read it without holding any lock.
type PipelineState struct {
	// Sample is the most recently uploaded reference recording, if any.
	// Each upload replaces it wholesale.
	Sample *voiceforge.AudioSample

	// Model is the voice model bound by the last successful clone, if any.
	Model *voiceforge.VoiceModel

	// Models is the last fetched voice library listing, in server order.
	Models []voiceforge.VoiceModel

	// ScriptText is the text to synthesize.
	ScriptText string

	// Speed and Pitch are passed through to generation unclamped. The
	// meaningful domains are [0.5, 2.0] and [-12, +12] semitones.
	Speed float64
	Pitch float64

	// Busy is true while a clone or generate job is active; TargetID then
	// names the owning node.
	Busy     bool
	TargetID string

	// Progress and ProgressMessage mirror the latest progress event of the
	// active (or last finished) job.
	Progress        int
	ProgressMessage string

	// ResultURL is the absolute URL of the latest generated audio. It may
	// become non-empty before the job completes when the server streams a
	// partial result.
	ResultURL      string
	ResultDuration float64

	// LastError is the message of the most recent failure, if any. No
	// error history is kept.
	LastError string
}

// Pipeline is the voice lifecycle store and generation state machine for
// one studio session.
type Pipeline struct {
	client *voiceforge.Client

	mu    sync.Mutex
	state PipelineState
}

// New creates a pipeline backed by the given API client.
func New(client *voiceforge.Client) *Pipeline {
	return &Pipeline{
		client: client,
		state: PipelineState{
			Speed: 1.0,
		},
	}
}

// Snapshot returns a copy of the current state. Pointer fields are cloned
// so the caller cannot observe later mutations.
func (p *Pipeline) Snapshot() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	if p.state.Sample != nil {
		sample := *p.state.Sample
		s.Sample = &sample
	}
	if p.state.Model != nil {
		model := *p.state.Model
		s.Model = &model
	}
	s.Models = append([]voiceforge.VoiceModel(nil), p.state.Models...)
	return s
}

// SetScript sets the text to synthesize.
func (p *Pipeline) SetScript(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ScriptText = text
}

// SetSpeed sets the speaking speed. Values outside [0.5, 2.0] are passed
// through; the server is authoritative on rejection.
func (p *Pipeline) SetSpeed(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Speed = speed
}

// SetPitch sets the pitch shift in semitones. Values outside [-12, +12]
// are passed through; the server is authoritative on rejection.
func (p *Pipeline) SetPitch(pitch float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Pitch = pitch
}

// Upload uploads a reference recording, replacing any previously held
// sample. A sample judged unusable (IsValid=false) still replaces the old
// one; callers branch on IsValid, not on the error.
func (p *Pipeline) Upload(ctx context.Context, file io.Reader, filename string) (*voiceforge.AudioSample, error) {
	sample, err := p.client.Audio.Upload(ctx, file, filename)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state.LastError = err.Error()
		return nil, err
	}
	p.state.Sample = sample
	return sample, nil
}

// Clone derives a voice model from the held sample and binds it to the
// pipeline. Preconditions: a valid sample is held, name is non-empty, and
// no job is active. On success the voice library listing is refreshed.
func (p *Pipeline) Clone(ctx context.Context, name string) (*voiceforge.VoiceModel, error) {
	name = strings.TrimSpace(name)

	p.mu.Lock()
	if p.state.Busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	if p.state.Sample == nil || !p.state.Sample.IsValid {
		p.mu.Unlock()
		return nil, validationErr("no valid audio uploaded")
	}
	if name == "" {
		p.mu.Unlock()
		return nil, validationErr("voice name is required")
	}
	audioID := p.state.Sample.ID
	p.state.Busy = true
	p.state.TargetID = TargetVoiceDNA
	p.state.Progress = 0
	p.state.ProgressMessage = "Extracting voice DNA..."
	p.mu.Unlock()

	model, err := p.client.Voice.Clone(ctx, &voiceforge.CloneRequest{
		AudioID: audioID,
		Name:    name,
	})

	p.mu.Lock()
	if err != nil {
		p.state.LastError = err.Error()
		p.endJobLocked()
		p.mu.Unlock()
		return nil, err
	}
	p.state.Model = model
	p.state.Progress = 100
	p.state.ProgressMessage = "Voice cloned successfully"
	p.endJobLocked()
	p.mu.Unlock()

	// Best effort: the clone already succeeded, a stale listing is
	// recoverable by the next refresh.
	if err := p.RefreshModels(ctx); err != nil {
		slog.Debug("studio: refresh after clone failed", "err", err)
	}

	return model, nil
}

// Generate synthesizes the current script with the bound voice, folding
// streamed progress into the pipeline state as it arrives. The bound model
// takes precedence over the raw sample when both are available.
//
// On stream completion or error the pipeline returns to idle, keeping the
// last observed progress, message and result URL; errors are returned, not
// swallowed.
func (p *Pipeline) Generate(ctx context.Context) error {
	p.mu.Lock()
	if p.state.Busy {
		p.mu.Unlock()
		return ErrBusy
	}

	req := &voiceforge.SpeechRequest{
		Text:  p.state.ScriptText,
		Speed: p.state.Speed,
		Pitch: p.state.Pitch,
	}
	switch {
	case p.state.Model != nil:
		req.VoiceModelID = p.state.Model.ID
	case p.state.Sample != nil:
		req.AudioID = p.state.Sample.ID
	default:
		p.mu.Unlock()
		return validationErr("no voice model selected")
	}
	if strings.TrimSpace(req.Text) == "" {
		p.mu.Unlock()
		return validationErr("no script text provided")
	}

	p.state.Busy = true
	p.state.TargetID = TargetOutput
	p.state.Progress = 0
	p.state.ProgressMessage = "Starting generation..."
	p.state.ResultURL = ""
	p.state.ResultDuration = 0
	p.mu.Unlock()

	for ev, err := range p.client.Generate.SpeechStream(ctx, req) {
		p.mu.Lock()
		if err != nil {
			p.state.LastError = err.Error()
			p.endJobLocked()
			p.mu.Unlock()
			return err
		}
		p.state.Progress = ev.Progress
		p.state.ProgressMessage = ev.Message
		if ev.AudioURL != "" {
			p.state.ResultURL = p.client.Generate.AudioURL(voiceforge.OutputID(ev.AudioURL))
		}
		if ev.DurationSeconds > 0 {
			p.state.ResultDuration = ev.DurationSeconds
		}
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.endJobLocked()
	p.mu.Unlock()
	return nil
}

// UseModel binds a model from the fetched library listing, replacing any
// model bound by a previous clone. Call RefreshModels first.
func (p *Pipeline) UseModel(modelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.state.Models {
		if p.state.Models[i].ID == modelID {
			model := p.state.Models[i]
			p.state.Model = &model
			return nil
		}
	}
	return validationErr("voice model not found in library")
}

// RefreshModels fetches the voice library listing.
func (p *Pipeline) RefreshModels(ctx context.Context) error {
	models, err := p.client.Voice.List(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Models = models
	return nil
}

// DeleteModel removes a model from the library and refreshes the listing.
// There is no cascading delete: a podcast cast referencing the model keeps
// its now-dangling assignment until re-validated.
func (p *Pipeline) DeleteModel(ctx context.Context, modelID string) error {
	if err := p.client.Voice.Delete(ctx, modelID); err != nil {
		return err
	}

	p.mu.Lock()
	if p.state.Model != nil && p.state.Model.ID == modelID {
		p.state.Model = nil
	}
	p.mu.Unlock()

	return p.RefreshModels(ctx)
}

// Reset clears the session back to its initial state: sample, model,
// script, style and results. The fetched library listing is kept.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	models := p.state.Models
	p.state = PipelineState{
		Speed:  1.0,
		Models: models,
	}
}

// endJobLocked tears down the active job. Caller holds p.mu.
func (p *Pipeline) endJobLocked() {
	p.state.Busy = false
	p.state.TargetID = ""
}
