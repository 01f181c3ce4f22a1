package voiceforge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestVoiceList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/models" || r.Method != http.MethodGet {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"id":"vm-1","name":"Ada","created_at":"2026-08-30T12:00:00Z","duration_seconds":45,"tags":["demo"],"preview_url":"/api/voice/models/vm-1/preview"}],"count":1}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	models, err := client.Voice.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 1 {
		t.Fatalf("got %d models, want 1", len(models))
	}
	m := models[0]
	if m.ID != "vm-1" || m.Name != "Ada" || m.DurationSeconds != 45 {
		t.Errorf("model = %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestVoiceClone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/clone" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req CloneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.AudioID != "a-1" || req.Name != "Ada" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(VoiceModel{
			ID:        "vm-1",
			Name:      req.Name,
			CreatedAt: time.Now().UTC(),
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	model, err := client.Voice.Clone(context.Background(), &CloneRequest{AudioID: "a-1", Name: "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	if model.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", model.Name)
	}
}

func TestVoiceDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if err := client.Voice.Delete(context.Background(), "vm-1"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/voice/models/vm-1" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
}

func TestAudioUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "sample.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		json.NewEncoder(w).Encode(AudioSample{
			ID:              "a-1",
			Filename:        header.Filename,
			DurationSeconds: 45,
			SampleRate:      24000,
			IsValid:         true,
			Message:         "Audio is valid",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	sample, err := client.Audio.Upload(context.Background(), strings.NewReader("RIFF...."), "sample.wav")
	if err != nil {
		t.Fatal(err)
	}
	if sample.ID != "a-1" || !sample.IsValid || sample.SampleRate != 24000 {
		t.Errorf("sample = %+v", sample)
	}
}

func TestAudioUploadInvalidSample(t *testing.T) {
	// A short recording is a successful response carrying a negative
	// judgment, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AudioSample{
			ID:              "a-2",
			DurationSeconds: 5,
			IsValid:         false,
			Message:         "Audio must be at least 30 seconds",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	sample, err := client.Audio.Upload(context.Background(), strings.NewReader("x"), "short.wav")
	if err != nil {
		t.Fatal(err)
	}
	if sample.IsValid {
		t.Error("expected IsValid=false")
	}
	if sample.Message == "" {
		t.Error("expected a validation message")
	}
}

func TestAudioInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio/a-1/info" || r.Method != http.MethodGet {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"duration_seconds":45.2,"sample_rate":24000,"is_valid":true,"message":"Audio is valid"}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	info, err := client.Audio.Info(context.Background(), "a-1")
	if err != nil {
		t.Fatal(err)
	}
	if info.DurationSeconds != 45.2 || info.SampleRate != 24000 || !info.IsValid {
		t.Errorf("info = %+v", info)
	}
}

func TestAudioDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if err := client.Audio.Delete(context.Background(), "a-1"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/audio/a-1" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
}

func TestPodcastGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/podcast/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req PodcastRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.SpeakerMap) != 2 {
			t.Errorf("speaker_map = %v", req.SpeakerMap)
		}
		json.NewEncoder(w).Encode(PodcastResponse{
			ID:       "p-1",
			URL:      "/api/podcast/audio/p-1",
			Duration: 12.4,
			Segments: []PodcastSegment{
				{Speaker: "Speaker 1", Text: "Hi"},
				{Speaker: "Speaker 2", Text: "Hello"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	resp, err := client.Podcast.Generate(context.Background(), &PodcastRequest{
		Script:     "Speaker 1: Hi\nSpeaker 2: Hello",
		SpeakerMap: map[string]string{"Speaker 1": "vm-1", "Speaker 2": "vm-2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.ID != "p-1" || len(resp.Segments) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}
