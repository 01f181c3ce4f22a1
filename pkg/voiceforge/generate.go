package voiceforge

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// GenerateService provides speech synthesis operations.
type GenerateService struct {
	client *Client
}

// newGenerateService creates a new generate service.
func newGenerateService(client *Client) *GenerateService {
	return &GenerateService{client: client}
}

// Speech performs a blocking generation call and returns the finished result.
func (s *GenerateService) Speech(ctx context.Context, req *SpeechRequest) (*SpeechResponse, error) {
	var resp SpeechResponse
	err := s.client.http.request(ctx, http.MethodPost, "/api/generate", req, GenerateTimeout, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SpeechStream performs a generation call with live progress.
//
// Returns an iterator over decoded progress events in arrival order. Lines
// that fail to parse are skipped without ending the stream; a disconnect
// mid-stream ends iteration without an error, leaving the caller's last
// observed state standing. The connection is closed when iteration
// completes or breaks. SaveVoice and VoiceName are not honored on the
// stream endpoint and are stripped before sending.
//
// Example:
//
//	for ev, err := range client.Generate.SpeechStream(ctx, req) {
//	    if err != nil {
//	        return err
//	    }
//	    render(ev.Progress, ev.Message)
//	}
func (s *GenerateService) SpeechStream(ctx context.Context, req *SpeechRequest) iter.Seq2[*ProgressEvent, error] {
	return func(yield func(*ProgressEvent, error) bool) {
		streamReq := *req
		streamReq.SaveVoice = false
		streamReq.VoiceName = ""

		slog.Debug("voiceforge stream starting", "text_len", len(req.Text), "model", req.VoiceModelID)

		resp, err := s.client.http.requestStream(ctx, http.MethodPost, "/api/generate/stream", &streamReq)
		if err != nil {
			yield(nil, err)
			return
		}

		reader := newStreamReader(resp)
		defer reader.close()

		events := 0
		for {
			data, done := reader.next()
			if done {
				slog.Debug("voiceforge stream done", "events", events)
				return
			}

			var ev ProgressEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				// Tolerate partial or malformed lines; the next event
				// supersedes whatever this one carried.
				slog.Debug("voiceforge stream skipping line", "err", err)
				continue
			}

			events++
			if !yield(&ev, nil) {
				return
			}
		}
	}
}

// Download fetches rendered audio by output ID.
//
// The returned io.ReadCloser must be closed by the caller.
func (s *GenerateService) Download(ctx context.Context, outputID string) (io.ReadCloser, error) {
	return s.client.http.download(ctx, "/api/generate/"+url.PathEscape(outputID))
}

// AudioURL returns the absolute URL of a rendered output.
func (s *GenerateService) AudioURL(outputID string) string {
	return s.client.AbsoluteURL("/api/generate/" + url.PathEscape(outputID))
}

// OutputID extracts the output ID from an audio_url value such as
// "/api/generate/abc123".
func OutputID(audioURL string) string {
	if audioURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(audioURL, "/"), "/")
	return parts[len(parts)-1]
}
