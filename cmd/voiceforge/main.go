// Package main provides the VoiceForge CLI tool.
//
// Usage:
//
//	voiceforge [flags] <service> <command> [args]
//
// Services:
//
//	audio    - Reference recording management
//	voice    - Voice model management (clone, list, preview)
//	generate - Speech generation from cloned voices
//	podcast  - Two-speaker podcast generation
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.voiceforge/
//	Use 'voiceforge config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/voiceforge/voiceforge-go/cmd/voiceforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
