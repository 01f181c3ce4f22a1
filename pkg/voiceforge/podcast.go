package voiceforge

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// PodcastService provides multi-speaker podcast synthesis.
type PodcastService struct {
	client *Client
}

// newPodcastService creates a new podcast service.
func newPodcastService(client *Client) *PodcastService {
	return &PodcastService{client: client}
}

// Generate renders a full podcast in one synchronous call.
//
// Unlike speech generation there is no progress stream; segment synthesis
// and stitching happen server-side and the call blocks until the final mix
// is ready, bounded by PodcastTimeout.
func (s *PodcastService) Generate(ctx context.Context, req *PodcastRequest) (*PodcastResponse, error) {
	var resp PodcastResponse
	err := s.client.http.request(ctx, http.MethodPost, "/api/podcast/generate", req, PodcastTimeout, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download fetches a rendered podcast by ID.
//
// The returned io.ReadCloser must be closed by the caller.
func (s *PodcastService) Download(ctx context.Context, podcastID string) (io.ReadCloser, error) {
	return s.client.http.download(ctx, "/api/podcast/audio/"+url.PathEscape(podcastID))
}

// AudioURL returns the absolute URL of a rendered podcast.
func (s *PodcastService) AudioURL(podcastID string) string {
	return s.client.AbsoluteURL("/api/podcast/audio/" + url.PathEscape(podcastID))
}
