package studio

import (
	"context"
	"strings"
	"sync"

	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

// The cast is a fixed, closed set of two roles.
const (
	RoleSpeaker1 = "Speaker 1"
	RoleSpeaker2 = "Speaker 2"
)

// Roles returns the cast roles in display order.
func Roles() []string {
	return []string{RoleSpeaker1, RoleSpeaker2}
}

// DefaultScript seeds a new session with a short example exchange.
const DefaultScript = "Speaker 1: Hello! Welcome to our AI podcast.\n" +
	"Speaker 2: Thanks for having me. This is going to be fun.\n" +
	"Speaker 1: Let's see what we can create."

// CastMember is one role's voice assignment. A slot is either fully
// assigned (both ModelID and ModelName set) or fully empty; SetCast
// enforces this by construction.
type CastMember struct {
	Role      string
	ModelID   string
	ModelName string
}

// Assigned reports whether the slot carries a voice model.
func (m CastMember) Assigned() bool {
	return m.ModelID != ""
}

// CastAssigner is the capability the session exposes to whatever input
// mechanism assigns voices to roles (drag-and-drop, click-to-select, ...).
type CastAssigner interface {
	SetCast(role, modelID, modelName string) error
}

// PodcastState is a point-in-time snapshot of a podcast session.
type PodcastState struct {
	// Cast holds one member per role, in Roles() order.
	Cast []CastMember

	// Script is the screenplay text.
	Script string

	// IsGenerating is true while a render is in flight.
	IsGenerating bool

	// AudioURL is the absolute URL of the last successful mix. It is not
	// cleared by a failed render.
	AudioURL string

	// Segments are the speaker turns of the last successful mix, in
	// script order.
	Segments []voiceforge.PodcastSegment

	// LastError is the message of the most recent failure, if any.
	LastError string
}

// PodcastSession is the cast and script orchestrator for two-speaker
// podcast generation.
type PodcastSession struct {
	client *voiceforge.Client

	mu           sync.Mutex
	cast         map[string]CastMember
	script       string
	isGenerating bool
	audioURL     string
	segments     []voiceforge.PodcastSegment
	lastError    string
}

var _ CastAssigner = (*PodcastSession)(nil)

// NewPodcastSession creates a podcast session backed by the given client.
// Its generating lock is independent of any Pipeline's busy flag.
func NewPodcastSession(client *voiceforge.Client) *PodcastSession {
	return &PodcastSession{
		client: client,
		cast: map[string]CastMember{
			RoleSpeaker1: {Role: RoleSpeaker1},
			RoleSpeaker2: {Role: RoleSpeaker2},
		},
		script: DefaultScript,
	}
}

// SetCast assigns a voice model to a role, replacing the slot wholesale.
// Passing empty strings clears the slot; clearing an already-empty slot is
// a no-op. Assigning an ID without a name (or vice versa) is rejected so a
// slot can never be half filled. No further validation happens here:
// an incomplete cast is a legal intermediate state.
func (s *PodcastSession) SetCast(role, modelID, modelName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cast[role]; !ok {
		return validationErr("unknown speaker role: " + role)
	}
	if (modelID == "") != (modelName == "") {
		return validationErr("speaker assignment requires both model id and name")
	}

	s.cast[role] = CastMember{Role: role, ModelID: modelID, ModelName: modelName}
	return nil
}

// SetScript replaces the screenplay text.
func (s *PodcastSession) SetScript(script string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = script
}

// Snapshot returns a copy of the current state.
func (s *PodcastSession) Snapshot() PodcastState {
	s.mu.Lock()
	defer s.mu.Unlock()

	cast := make([]CastMember, 0, len(s.cast))
	for _, role := range Roles() {
		cast = append(cast, s.cast[role])
	}
	return PodcastState{
		Cast:         cast,
		Script:       s.script,
		IsGenerating: s.isGenerating,
		AudioURL:     s.audioURL,
		Segments:     append([]voiceforge.PodcastSegment(nil), s.segments...),
		LastError:    s.lastError,
	}
}

// Generate renders the podcast in one blocking request.
//
// Both roles must be assigned and the script non-blank; either failure is
// rejected here, before any network call. On success the mix URL and the
// returned speaker segments replace the previous result; on failure the
// previous result stands and the error propagates.
func (s *PodcastSession) Generate(ctx context.Context) (*voiceforge.PodcastResponse, error) {
	s.mu.Lock()
	if s.isGenerating {
		s.mu.Unlock()
		return nil, ErrPodcastBusy
	}
	sp1, sp2 := s.cast[RoleSpeaker1], s.cast[RoleSpeaker2]
	if !sp1.Assigned() || !sp2.Assigned() {
		s.mu.Unlock()
		return nil, validationErr("both speakers must be assigned")
	}
	if strings.TrimSpace(s.script) == "" {
		s.mu.Unlock()
		return nil, validationErr("script is empty")
	}
	req := &voiceforge.PodcastRequest{
		Script: s.script,
		SpeakerMap: map[string]string{
			RoleSpeaker1: sp1.ModelID,
			RoleSpeaker2: sp2.ModelID,
		},
	}
	s.isGenerating = true
	s.mu.Unlock()

	resp, err := s.client.Podcast.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isGenerating = false
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}
	s.audioURL = s.client.AbsoluteURL(resp.URL)
	s.segments = resp.Segments
	return resp, nil
}

// Reset clears the last result and the generating flag. The cast and
// script are kept.
func (s *PodcastSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioURL = ""
	s.isGenerating = false
}
