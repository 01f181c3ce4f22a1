package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

func newPodcastServer(t *testing.T, fail bool) (*httptest.Server, *atomic.Int64, *atomic.Bool) {
	t.Helper()
	var requests atomic.Int64
	var failing atomic.Bool
	failing.Store(fail)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"Generation error: model crashed"}`))
			return
		}
		var req voiceforge.PodcastRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(voiceforge.PodcastResponse{
			ID:       "p-1",
			URL:      "/api/podcast/audio/p-1",
			Duration: 8.2,
			Segments: ParseScript(req.Script),
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests, &failing
}

func assignBoth(t *testing.T, s *PodcastSession) {
	t.Helper()
	if err := s.SetCast(RoleSpeaker1, "vm-1", "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCast(RoleSpeaker2, "vm-2", "Grace"); err != nil {
		t.Fatal(err)
	}
}

func TestPodcastGenerate(t *testing.T) {
	srv, _, _ := newPodcastServer(t, false)
	s := NewPodcastSession(voiceforge.NewClient(voiceforge.WithBaseURL(srv.URL)))
	assignBoth(t, s)
	s.SetScript("Speaker 1: Hi\nSpeaker 2: Hello")

	resp, err := s.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Segments) < 2 {
		t.Fatalf("got %d segments, want >= 2", len(resp.Segments))
	}

	st := s.Snapshot()
	if st.IsGenerating {
		t.Error("generating flag not cleared")
	}
	if st.AudioURL == "" {
		t.Error("AudioURL not set")
	}
	if st.AudioURL[:4] != "http" {
		t.Errorf("AudioURL = %q, want absolute URL", st.AudioURL)
	}
	if len(st.Segments) != 2 {
		t.Errorf("snapshot segments = %v", st.Segments)
	}
}

func TestPodcastGenerateRequiresFullCast(t *testing.T) {
	srv, requests, _ := newPodcastServer(t, false)
	client := voiceforge.NewClient(voiceforge.WithBaseURL(srv.URL))

	tests := []struct {
		name  string
		setup func(s *PodcastSession)
	}{
		{"nobody assigned", func(s *PodcastSession) {}},
		{"only speaker 1", func(s *PodcastSession) {
			s.SetCast(RoleSpeaker1, "vm-1", "Ada")
		}},
		{"only speaker 2", func(s *PodcastSession) {
			s.SetCast(RoleSpeaker2, "vm-2", "Grace")
		}},
		{"assignment cleared", func(s *PodcastSession) {
			s.SetCast(RoleSpeaker1, "vm-1", "Ada")
			s.SetCast(RoleSpeaker2, "vm-2", "Grace")
			s.SetCast(RoleSpeaker2, "", "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPodcastSession(client)
			tt.setup(s)
			before := requests.Load()
			_, err := s.Generate(context.Background())
			if !IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if err.Error() != "studio: both speakers must be assigned" {
				t.Errorf("message = %q", err.Error())
			}
			if requests.Load() != before {
				t.Error("rejection must happen before any network call")
			}
		})
	}
}

func TestPodcastGenerateBlankScript(t *testing.T) {
	srv, requests, _ := newPodcastServer(t, false)
	s := NewPodcastSession(voiceforge.NewClient(voiceforge.WithBaseURL(srv.URL)))
	assignBoth(t, s)
	s.SetScript("  \n ")

	if _, err := s.Generate(context.Background()); !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if requests.Load() != 0 {
		t.Error("rejection must happen before any network call")
	}
}

func TestPodcastFailureKeepsPreviousResult(t *testing.T) {
	srv, _, failing := newPodcastServer(t, false)
	s := NewPodcastSession(voiceforge.NewClient(voiceforge.WithBaseURL(srv.URL)))
	assignBoth(t, s)

	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	prevURL := s.Snapshot().AudioURL
	if prevURL == "" {
		t.Fatal("expected a result URL")
	}

	// A failed re-render on the same session keeps the last good result.
	failing.Store(true)
	if _, err := s.Generate(context.Background()); err == nil {
		t.Fatal("expected failure")
	}
	st := s.Snapshot()
	if st.IsGenerating {
		t.Error("generating flag not cleared after failure")
	}
	if st.AudioURL != prevURL {
		t.Errorf("AudioURL = %q, want previous result %q", st.AudioURL, prevURL)
	}
	if st.LastError == "" {
		t.Error("LastError not recorded")
	}
}

func TestSetCast(t *testing.T) {
	s := NewPodcastSession(voiceforge.NewClient())

	if err := s.SetCast("Speaker 3", "vm-1", "Ada"); !IsValidation(err) {
		t.Errorf("unknown role err = %v, want ValidationError", err)
	}
	if err := s.SetCast(RoleSpeaker1, "vm-1", ""); !IsValidation(err) {
		t.Errorf("partial assignment err = %v, want ValidationError", err)
	}

	// Clearing an already-empty slot is a no-op, not an error.
	before := s.Snapshot()
	if err := s.SetCast(RoleSpeaker1, "", ""); err != nil {
		t.Fatal(err)
	}
	after := s.Snapshot()
	if before.Cast[0] != after.Cast[0] {
		t.Errorf("clearing empty slot changed state: %+v -> %+v", before.Cast[0], after.Cast[0])
	}

	if err := s.SetCast(RoleSpeaker1, "vm-1", "Ada"); err != nil {
		t.Fatal(err)
	}
	got := s.Snapshot().Cast[0]
	if got.ModelID != "vm-1" || got.ModelName != "Ada" || !got.Assigned() {
		t.Errorf("cast member = %+v", got)
	}
}

func TestPodcastReset(t *testing.T) {
	srv, _, _ := newPodcastServer(t, false)
	s := NewPodcastSession(voiceforge.NewClient(voiceforge.WithBaseURL(srv.URL)))
	assignBoth(t, s)

	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Reset()

	st := s.Snapshot()
	if st.AudioURL != "" || st.IsGenerating {
		t.Errorf("reset state = %+v", st)
	}
	if !st.Cast[0].Assigned() || st.Script == "" {
		t.Error("reset must keep cast and script")
	}
}
