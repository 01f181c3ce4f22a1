package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/voiceforge/voiceforge-go/pkg/cli"
	"github.com/voiceforge/voiceforge-go/pkg/voiceforge"
)

// loadRequest loads a request from a YAML or JSON file
func loadRequest(path string, v any) error {
	return cli.LoadRequest(path, v)
}

// printSuccess prints a success message
func printSuccess(format string, args ...any) {
	cli.PrintSuccess(format, args...)
}

// createClient creates a VoiceForge API client from context configuration
func createClient(ctx *cli.Context) *voiceforge.Client {
	var opts []voiceforge.Option

	if ctx.BaseURL != "" {
		opts = append(opts, voiceforge.WithBaseURL(ctx.BaseURL))
	}
	if ctx.APIKey != "" {
		opts = append(opts, voiceforge.WithAPIKey(ctx.APIKey))
	}

	return voiceforge.NewClient(opts...)
}

// saveStream copies a remote audio stream to a local file
func saveStream(rc io.ReadCloser, path string) (int64, error) {
	defer rc.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, rc)
	if err != nil {
		return n, fmt.Errorf("failed to write audio: %w", err)
	}
	return n, nil
}
