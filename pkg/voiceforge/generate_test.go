package voiceforge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSpeechStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate/stream" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req SpeechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SaveVoice || req.VoiceName != "" {
			t.Error("save fields must be stripped on the stream endpoint")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"stage\":\"starting\",\"progress\":0,\"message\":\"Starting generation...\"}\n"))
		w.Write([]byte("data: {\"stage\":\"encoding\",\"progress\":10,\"message\":\"Encoding\"}\n"))
		w.Write([]byte("data: {broken json\n"))
		w.Write([]byte("data: {\"stage\":\"complete\",\"progress\":100,\"message\":\"done\",\"audio_url\":\"/api/generate/abc123\"}\n"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	req := &SpeechRequest{
		VoiceModelID: "vm-1",
		Text:         "Hello world",
		Speed:        1.0,
		SaveVoice:    true,
		VoiceName:    "should-not-send",
	}

	var events []*ProgressEvent
	for ev, err := range client.Generate.SpeechStream(context.Background(), req) {
		if err != nil {
			t.Fatalf("stream error: %v", err)
		}
		events = append(events, ev)
	}

	// The broken line is skipped, not fatal.
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Stage != StageStarting || events[0].Progress != 0 {
		t.Errorf("first event = %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Progress != 100 || last.AudioURL != "/api/generate/abc123" {
		t.Errorf("last event = %+v", last)
	}
}

func TestSpeechStreamRejectedBeforeStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Text cannot be empty"}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	var streamErr error
	for _, err := range client.Generate.SpeechStream(context.Background(), &SpeechRequest{Text: ""}) {
		streamErr = err
		break
	}

	apiErr, ok := AsError(streamErr)
	if !ok {
		t.Fatalf("error = %v, want *Error", streamErr)
	}
	if !apiErr.IsInvalidRequest() || apiErr.Detail != "Text cannot be empty" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req SpeechRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.SaveVoice || req.VoiceName != "Ada" {
			t.Errorf("save fields not passed through: %+v", req)
		}
		json.NewEncoder(w).Encode(SpeechResponse{
			AudioURL:        "/api/generate/out-1",
			DurationSeconds: 2.5,
			VoiceModelID:    "vm-new",
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	resp, err := client.Generate.Speech(context.Background(), &SpeechRequest{
		AudioID:   "a-1",
		Text:      "Hello",
		SaveVoice: true,
		VoiceName: "Ada",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.AudioURL != "/api/generate/out-1" || resp.VoiceModelID != "vm-new" {
		t.Errorf("resp = %+v", resp)
	}
}
