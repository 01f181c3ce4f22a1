package voiceforge

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// VoiceService provides voice model management operations.
type VoiceService struct {
	client *Client
}

// newVoiceService creates a new voice service.
func newVoiceService(client *Client) *VoiceService {
	return &VoiceService{client: client}
}

// Clone derives a persisted voice model from an uploaded sample.
//
// The sample must have been judged valid on upload; the server rejects
// recordings below the cloning minimum.
func (s *VoiceService) Clone(ctx context.Context, req *CloneRequest) (*VoiceModel, error) {
	var model VoiceModel
	err := s.client.http.request(ctx, http.MethodPost, "/api/voice/clone", req, CloneTimeout, &model)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// List returns all saved voice models in server-defined order.
func (s *VoiceService) List(ctx context.Context) ([]VoiceModel, error) {
	var resp struct {
		Models []VoiceModel `json:"models"`
		Count  int          `json:"count"`
	}

	err := s.client.http.request(ctx, http.MethodGet, "/api/voice/models", nil, ReadTimeout, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// Get retrieves a single voice model.
func (s *VoiceService) Get(ctx context.Context, modelID string) (*VoiceModel, error) {
	var model VoiceModel
	err := s.client.http.request(ctx, http.MethodGet, "/api/voice/models/"+url.PathEscape(modelID), nil, ReadTimeout, &model)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// Delete removes a voice model. Irreversible; callers should re-list
// afterwards. Deleting a model that a podcast cast still references leaves
// a dangling assignment for the caller to re-validate.
func (s *VoiceService) Delete(ctx context.Context, modelID string) error {
	return s.client.http.request(ctx, http.MethodDelete, "/api/voice/models/"+url.PathEscape(modelID), nil, ReadTimeout, nil)
}

// Preview fetches the preview audio recorded for a model.
//
// The returned io.ReadCloser must be closed by the caller.
func (s *VoiceService) Preview(ctx context.Context, modelID string) (io.ReadCloser, error) {
	return s.client.http.download(ctx, "/api/voice/models/"+url.PathEscape(modelID)+"/preview")
}

// PreviewURL returns the absolute preview URL for a model, suitable for
// handing to a media player.
func (s *VoiceService) PreviewURL(modelID string) string {
	return s.client.AbsoluteURL("/api/voice/models/" + url.PathEscape(modelID) + "/preview")
}
