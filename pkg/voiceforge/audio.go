package voiceforge

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// AudioService provides reference sample operations.
type AudioService struct {
	client *Client
}

// newAudioService creates a new audio service.
func newAudioService(client *Client) *AudioService {
	return &AudioService{client: client}
}

// Upload uploads a reference recording for voice cloning.
//
// The server converts, resamples and denoises the audio, then judges it:
// a recording shorter than the cloning minimum comes back with
// IsValid=false and an explanatory Message, not an error. Each upload
// replaces nothing server-side; the caller decides which sample to keep.
func (s *AudioService) Upload(ctx context.Context, file io.Reader, filename string) (*AudioSample, error) {
	var sample AudioSample
	err := s.client.http.uploadFile(ctx, "/api/audio/upload", file, filename, UploadTimeout, &sample)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// Download fetches the processed audio for an uploaded sample.
//
// The returned io.ReadCloser must be closed by the caller.
func (s *AudioService) Download(ctx context.Context, audioID string) (io.ReadCloser, error) {
	return s.client.http.download(ctx, "/api/audio/"+url.PathEscape(audioID))
}

// Info returns the stored metadata for an uploaded sample without
// downloading the audio. A sample that has been deleted or expired
// server-side yields a not-found error.
func (s *AudioService) Info(ctx context.Context, audioID string) (*AudioInfo, error) {
	var info AudioInfo
	err := s.client.http.request(ctx, http.MethodGet, "/api/audio/"+url.PathEscape(audioID)+"/info", nil, ReadTimeout, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Delete removes an uploaded sample from the server. Voice models already
// cloned from the sample are unaffected.
func (s *AudioService) Delete(ctx context.Context, audioID string) error {
	return s.client.http.request(ctx, http.MethodDelete, "/api/audio/"+url.PathEscape(audioID), nil, ReadTimeout, nil)
}

// URL returns the absolute URL of a processed sample, suitable for handing
// to a media player.
func (s *AudioService) URL(audioID string) string {
	return s.client.AbsoluteURL("/api/audio/" + url.PathEscape(audioID))
}
