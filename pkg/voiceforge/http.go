package voiceforge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// httpClient handles HTTP communication with the VoiceForge API.
type httpClient struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	userAgent string
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:    cfg.httpClient,
		baseURL:   cfg.baseURL,
		apiKey:    cfg.apiKey,
		userAgent: cfg.userAgent,
	}
}

// request makes a JSON request to the API. A timeout of zero leaves the
// context deadline untouched. The client never retries; failures propagate.
func (h *httpClient) request(ctx context.Context, method, path string, body any, timeout time.Duration, result any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	reqID := h.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	return h.handleResponse(resp, reqID, result)
}

// requestStream makes a request whose response body is a chunked progress
// stream. No timeout is applied; the stream runs until the server closes it.
// The caller owns the response body.
func (h *httpClient) requestStream(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	reqID := h.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	// A non-success status before any streaming begins fails the call.
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, h.handleErrorResponse(resp, reqID)
	}

	return resp, nil
}

// uploadFile uploads a file using multipart form data with streaming, so the
// file is never held in memory whole.
func (h *httpClient) uploadFile(ctx context.Context, path string, file io.Reader, filename string, timeout time.Duration, result any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()

		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			errCh <- fmt.Errorf("create form file: %w", err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			errCh <- fmt.Errorf("copy file: %w", err)
			return
		}
		if err := writer.Close(); err != nil {
			errCh <- fmt.Errorf("close writer: %w", err)
			return
		}

		errCh <- nil
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("create request: %w", err)
	}

	reqID := h.setHeaders(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if writeErr := <-errCh; writeErr != nil {
		return writeErr
	}

	return h.handleResponse(resp, reqID, result)
}

// download performs a raw GET whose body is returned to the caller unparsed.
// The returned io.ReadCloser must be closed by the caller.
func (h *httpClient) download(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	reqID := h.setHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, h.handleErrorResponse(resp, reqID)
	}

	return resp.Body, nil
}

// setHeaders sets common headers and returns the generated request ID.
func (h *httpClient) setHeaders(req *http.Request) string {
	reqID := uuid.New().String()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("User-Agent", h.userAgent)
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}
	return reqID
}

// handleResponse decodes a JSON API response.
func (h *httpClient) handleResponse(resp *http.Response, reqID string, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(body, resp.StatusCode, reqID)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// handleErrorResponse turns a non-2xx response into a typed error.
func (h *httpClient) handleErrorResponse(resp *http.Response, reqID string) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error response: %w", err)
	}
	return parseError(body, resp.StatusCode, reqID)
}

// parseError parses a {"detail": ...} error body, falling back to a generic
// message when the body carries no parseable detail.
func parseError(body []byte, httpStatus int, reqID string) error {
	var e Error
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		e.HTTPStatus = httpStatus
		e.RequestID = reqID
		return &e
	}

	return &Error{
		HTTPStatus: httpStatus,
		Detail:     fmt.Sprintf("request failed with status %d", httpStatus),
		RequestID:  reqID,
	}
}

var dataPrefix = []byte("data: ")

// streamReader decodes the newline-framed progress protocol: every line
// beginning with "data: " carries one JSON event.
type streamReader struct {
	reader *bufio.Reader
	resp   *http.Response
}

// newStreamReader creates a reader over a progress stream response.
func newStreamReader(resp *http.Response) *streamReader {
	return &streamReader{
		reader: bufio.NewReader(resp.Body),
		resp:   resp,
	}
}

// next returns the payload of the next data line. done is true when the
// stream has ended; a transport-level disconnect mid-stream ends iteration
// silently rather than surfacing an error, per the best-effort contract.
func (r *streamReader) next() (data []byte, done bool) {
	for {
		line, err := r.reader.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 && bytes.HasPrefix(bytes.TrimSpace(line), dataPrefix) {
				// Final line without trailing newline.
				return bytes.TrimSpace(line)[len(dataPrefix):], false
			}
			if err != io.EOF {
				slog.Debug("voiceforge stream ended early", "err", err)
			}
			return nil, true
		}

		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, dataPrefix) {
			continue
		}
		return line[len(dataPrefix):], false
	}
}

// close closes the underlying response body.
func (r *streamReader) close() {
	r.resp.Body.Close()
}
