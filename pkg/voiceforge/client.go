package voiceforge

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the default VoiceForge API base URL.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultUserAgent identifies this client in requests.
	DefaultUserAgent = "voiceforge-go/1.0"
)

// Per-operation timeout budgets. These are part of the API contract rather
// than tunables: they bound the worst-case latency of a local CPU-bound
// inference backend without starving the caller indefinitely.
const (
	// UploadTimeout bounds sample upload including server-side denoising.
	UploadTimeout = 60 * time.Second

	// CloneTimeout bounds voice model extraction.
	CloneTimeout = 120 * time.Second

	// GenerateTimeout bounds a blocking (non-streamed) generation call.
	GenerateTimeout = 300 * time.Second

	// PodcastTimeout bounds a full multi-speaker podcast render.
	PodcastTimeout = 600 * time.Second

	// ReadTimeout bounds all other read operations.
	ReadTimeout = 10 * time.Second
)

// Client is the VoiceForge API client.
type Client struct {
	// Audio provides reference sample upload and retrieval.
	Audio *AudioService

	// Voice provides voice model management operations.
	Voice *VoiceService

	// Generate provides speech synthesis operations.
	Generate *GenerateService

	// Podcast provides multi-speaker podcast synthesis.
	Podcast *PodcastService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
//
// The client must not set its own Timeout; operation deadlines are applied
// per call through the request context.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithAPIKey sets a bearer token sent with every request.
//
// The open-source backend does not require authentication; this is for
// deployments behind an authenticating gateway.
func WithAPIKey(apiKey string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// NewClient creates a new VoiceForge API client.
//
// Example:
//
//	client := voiceforge.NewClient()
//	client := voiceforge.NewClient(voiceforge.WithBaseURL("http://forge.local:8000"))
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.Audio = newAudioService(c)
	c.Voice = newVoiceService(c)
	c.Generate = newGenerateService(c)
	c.Podcast = newPodcastService(c)

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

// AbsoluteURL resolves a server-relative path (such as the audio_url fields
// returned by generation endpoints) against the configured base URL.
// Absolute URLs are returned unchanged.
func (c *Client) AbsoluteURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return c.config.baseURL + path
}
